package service

import (
	"fmt"

	pkgerrors "codehunt/pkg/errors"
)

// Reindeer is one contestant of the reindeer games.
type Reindeer struct {
	Name           string  `json:"name"`
	Strength       int64   `json:"strength"`
	Speed          float64 `json:"speed"`
	Height         int64   `json:"height"`
	AntlerWidth    int64   `json:"antler_width"`
	SnowMagicPower int64   `json:"snow_magic_power"`
	FavoriteFood   string  `json:"favorite_food"`
	CandiesEaten   int64   `json:"cAnD13s_3ATeN-yesT3rdAy"`
}

// ContestResult names the winner of each category.
type ContestResult struct {
	Fastest  string `json:"fastest"`
	Tallest  string `json:"tallest"`
	Magician string `json:"magician"`
	Consumer string `json:"consumer"`
}

// TotalStrength sums the strength of the team.
func TotalStrength(team []Reindeer) int64 {
	var total int64
	for _, r := range team {
		total += r.Strength
	}
	return total
}

// best returns the first reindeer with the highest score.
func best(team []Reindeer, score func(Reindeer) float64) Reindeer {
	winner := team[0]
	for _, r := range team[1:] {
		if score(r) > score(winner) {
			winner = r
		}
	}
	return winner
}

// Contest crowns the fastest, tallest, most magical and hungriest reindeer.
func Contest(team []Reindeer) (ContestResult, error) {
	if len(team) == 0 {
		return ContestResult{}, pkgerrors.Newf(pkgerrors.InvalidParams, "no contestants")
	}
	fastest := best(team, func(r Reindeer) float64 { return r.Speed })
	tallest := best(team, func(r Reindeer) float64 { return float64(r.Height) })
	magician := best(team, func(r Reindeer) float64 { return float64(r.SnowMagicPower) })
	consumer := best(team, func(r Reindeer) float64 { return float64(r.CandiesEaten) })
	return ContestResult{
		Fastest:  fmt.Sprintf("Speeding past the finish line with a strength of %d is %s", fastest.Strength, fastest.Name),
		Tallest:  fmt.Sprintf("%s is standing tall with his %d cm wide antlers", tallest.Name, tallest.AntlerWidth),
		Magician: fmt.Sprintf("%s could blast you away with a snow magic power of %d", magician.Name, magician.SnowMagicPower),
		Consumer: fmt.Sprintf("%s ate lots of candies, but also some %s", consumer.Name, consumer.FavoriteFood),
	}, nil
}
