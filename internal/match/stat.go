package match

import (
	"math"
)

// maxEloDifference bounds the estimate for a match without losses or without wins.
const maxEloDifference = 1200

type GameStatistics struct {
	WinningFraction float64
	EloDifference   float64
	LOS             float64
}

//https://chessprogramming.wikispaces.com/Match%20Statistics
func ComputeStat(wins, losses, draws int) GameStatistics {
	var games = wins + losses + draws
	if games == 0 {
		return GameStatistics{WinningFraction: 0.5, LOS: 0.5}
	}
	var winningFraction = (float64(wins) + 0.5*float64(draws)) / float64(games)
	var eloDifference = -math.Log(1/winningFraction-1) * 400 / math.Ln10
	eloDifference = math.Max(-maxEloDifference, math.Min(maxEloDifference, eloDifference))
	var los = 0.5
	if wins+losses != 0 {
		los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	}
	return GameStatistics{
		WinningFraction: winningFraction,
		EloDifference:   eloDifference,
		LOS:             los,
	}
}
