package repository

// Order is one gift order placed from a region.
type Order struct {
	ID       int64  `json:"id"`
	RegionID int64  `json:"region_id"`
	GiftName string `json:"gift_name"`
	Quantity int64  `json:"quantity"`
}

// Region is a delivery region.
type Region struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RegionTotal is the summed quantity ordered from one region.
type RegionTotal struct {
	Region string `json:"region"`
	Total  int64  `json:"total"`
}

// RegionTopGifts lists the most ordered gifts of a region.
type RegionTopGifts struct {
	Region   string   `json:"region"`
	TopGifts []string `json:"top_gifts"`
}
