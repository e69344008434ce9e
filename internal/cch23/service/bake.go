package service

import (
	"math"
)

// BakeResult is the number of cookies baked and what is left in the pantry.
type BakeResult struct {
	Cookies int64            `json:"cookies"`
	Pantry  map[string]int64 `json:"pantry"`
}

// Bake makes as many cookies as the pantry allows. Ingredients the recipe
// needs zero of are ignored; ingredients missing from the pantry count as
// zero.
func Bake(recipe, pantry map[string]int64) BakeResult {
	cookies := int64(math.MaxInt64)
	needed := false
	for name, qty := range recipe {
		if qty <= 0 {
			continue
		}
		needed = true
		cookies = min(cookies, pantry[name]/qty)
	}
	if !needed {
		cookies = 0
	}
	left := make(map[string]int64, len(pantry))
	for name, have := range pantry {
		left[name] = have - cookies*max(recipe[name], 0)
	}
	return BakeResult{Cookies: cookies, Pantry: left}
}
