package datasync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	summary := &Summary{}
	summary.add(DeckResult{Deck: "si::torseur", Cards: 12, Duplicates: 2, MediaMissing: []string{"ghost.png"}})
	summary.add(DeckResult{Deck: "maths::derivees", Cards: 3})
	summary.add(DeckResult{Deck: "physique::optique", Cards: 4, Err: errors.New("unwritable")})

	assert.Equal(t, 3, summary.Processed())
	assert.Equal(t, 2, summary.Succeeded())
	assert.Equal(t, 1, summary.Failed())
	assert.Equal(t, 15, summary.Cards(), "failed decks do not count")
	assert.Equal(t, 2, summary.Duplicates())
	assert.Equal(t, 1, summary.MediaMissing())
	assert.True(t, summary.Decks[2].Failed())
}

func TestSummary_Empty(t *testing.T) {
	summary := &Summary{}
	assert.Zero(t, summary.Processed())
	assert.Zero(t, summary.Succeeded())
	assert.Zero(t, summary.Failed())
}
