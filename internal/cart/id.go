package cart

import "strings"

const noNotes = "no-notes"

// DeriveItemID returns the cart line key for a food and its special
// instructions. The same food with the same notes always yields the same key;
// different notes yield different lines.
func DeriveItemID(foodID, notes string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(notes))), "-")
	if normalized == "" {
		normalized = noNotes
	}
	return foodID + "-" + normalized
}
