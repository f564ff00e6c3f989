package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitness(t *testing.T) {
	var outcome = MatchOutcome{Wins: 10, Losses: 4, Draws: 2}
	assert.InDelta(t, 0.3125, outcome.Fitness(16), 1e-12)
	assert.Equal(t, 16, outcome.Games())
}

func TestFitnessUsesConfiguredGames(t *testing.T) {
	// tool stopped early: 8 games reported out of 16 configured
	var outcome = MatchOutcome{Wins: 4, Losses: 4}
	assert.InDelta(t, 0.75, outcome.Fitness(16), 1e-12)
}

func TestFitnessExtremes(t *testing.T) {
	assert.Equal(t, 0.0, MatchOutcome{Wins: 16}.Fitness(16))
	assert.Equal(t, 1.0, MatchOutcome{Losses: 16}.Fitness(16))
	assert.Equal(t, 0.5, MatchOutcome{Draws: 16}.Fitness(16))
}
