package engine

import "github.com/gearclash/gearclash/internal/game"

// SlotAssignment maps each battle slot to one dealt card. The zero value is
// an empty assignment.
type SlotAssignment map[game.Slot]uint

// Assign places cardID into slot. If the card already occupies another
// slot it is moved: a card occupies at most one slot at a time.
func (a SlotAssignment) Assign(cardID uint, slot game.Slot) {
	for s, id := range a {
		if id == cardID && s != slot {
			delete(a, s)
		}
	}
	a[slot] = cardID
}

// Clear empties a slot.
func (a SlotAssignment) Clear(slot game.Slot) {
	delete(a, slot)
}

// Validate succeeds only when all three slots are filled with distinct
// cards drawn from the dealt set. The client-side tap-to-place flow is a
// convenience; submission is always re-validated here.
func (a SlotAssignment) Validate(dealt []uint) error {
	if len(a) != len(game.Slots) {
		return game.ErrIncompleteAssignment
	}
	inHand := make(map[uint]bool, len(dealt))
	for _, id := range dealt {
		inHand[id] = true
	}
	seen := make(map[uint]bool, len(a))
	for _, slot := range game.Slots {
		id, ok := a[slot]
		if !ok || id == 0 {
			return game.ErrIncompleteAssignment
		}
		if seen[id] || !inHand[id] {
			return game.ErrIncompleteAssignment
		}
		seen[id] = true
	}
	return nil
}
