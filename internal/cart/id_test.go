package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveItemID(t *testing.T) {
	tests := []struct {
		name   string
		foodID string
		notes  string
		want   string
	}{
		{"no notes", "5", "", "5-no-notes"},
		{"blank notes", "5", "   \t ", "5-no-notes"},
		{"single word", "5", "Spicy", "5-spicy"},
		{"whitespace runs collapse", "5", "  no   onions\tplease ", "5-no-onions-please"},
		{"case folded", "17", "EXTRA Cheese", "17-extra-cheese"},
		{"punctuation kept", "17", "half/half, thin", "17-half/half,-thin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveItemID(tt.foodID, tt.notes))
		})
	}
}

func TestDeriveItemID_Deterministic(t *testing.T) {
	assert.Equal(t, DeriveItemID("9", "No Ice"), DeriveItemID("9", " no  ice "))
	assert.NotEqual(t, DeriveItemID("9", "no ice"), DeriveItemID("9", ""))
	assert.NotEqual(t, DeriveItemID("9", "no ice"), DeriveItemID("10", "no ice"))
}
