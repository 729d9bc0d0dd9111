package engine

import "github.com/gearclash/gearclash/internal/game"

// Contestant pairs a card with its tuning state for one battle side. Tuned
// is nil for untuned cards (including freshly dealt ones).
type Contestant struct {
	Card  game.Card
	Tuned *game.TunedCar
}

// EffectiveStat returns the card's stat for the given slot: the base value
// plus the cumulative bonus of the matching mod's current stage.
func EffectiveStat(catalog *game.ModCatalog, c Contestant, slot game.Slot) int {
	base := 0
	switch slot {
	case game.SlotPower:
		base = c.Card.Power
	case game.SlotTorque:
		base = c.Card.Torque
	case game.SlotSpeed:
		base = c.Card.TopSpeed
	}
	if c.Tuned == nil {
		return base
	}
	mod := game.ModForSlot(slot)
	return base + catalog.CumulativeBonus(mod, c.Tuned.Stage(mod))
}
