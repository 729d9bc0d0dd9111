package game

// Mod is one of the three upgradeable stat channels. Each mod boosts the
// battle stat of its matching slot: engine -> power, turbo -> torque,
// weight reduction -> top speed.
type Mod string

const (
	ModEngine          Mod = "engine"
	ModTurbo           Mod = "turbo"
	ModWeightReduction Mod = "weight_reduction"
)

// Slot is one of the three battle categories a card is assigned to in
// best-of-3 mode.
type Slot string

const (
	SlotPower  Slot = "power"
	SlotTorque Slot = "torque"
	SlotSpeed  Slot = "speed"
)

// Slots lists the three slots in resolution order.
var Slots = []Slot{SlotPower, SlotTorque, SlotSpeed}

// Mods lists the three mods in shop display order.
var Mods = []Mod{ModEngine, ModTurbo, ModWeightReduction}

// ParseMod validates a mod name coming from a request path.
func ParseMod(s string) (Mod, bool) {
	switch Mod(s) {
	case ModEngine, ModTurbo, ModWeightReduction:
		return Mod(s), true
	}
	return "", false
}

// ModForSlot returns the mod whose bonus applies to the given slot.
func ModForSlot(slot Slot) Mod {
	switch slot {
	case SlotPower:
		return ModEngine
	case SlotTorque:
		return ModTurbo
	default:
		return ModWeightReduction
	}
}

// MaxStage is the last upgrade stage of every mod.
const MaxStage = 3

// ModCurve is the 3-stage cost and cumulative bonus table for one mod.
// Costs[i] pays the upgrade from stage i to stage i+1; Bonuses[i] is the
// cumulative stat bonus granted at stage i+1 (stage 0 grants nothing).
type ModCurve struct {
	Costs   [MaxStage]int `json:"costs"`
	Bonuses [MaxStage]int `json:"bonuses"`
}

// ModCatalog is the static definition of the upgrade economy, built from
// the server config at startup. It is pure lookup with no side effects.
type ModCatalog struct {
	curves map[Mod]ModCurve
}

// NewModCatalog builds a catalog from per-mod curves.
func NewModCatalog(curves map[Mod]ModCurve) *ModCatalog {
	return &ModCatalog{curves: curves}
}

// UpgradeCost returns the XP cost to move the mod from currentStage to
// currentStage+1. ok is false when no further upgrade exists.
func (c *ModCatalog) UpgradeCost(mod Mod, currentStage int) (cost int, ok bool) {
	curve, found := c.curves[mod]
	if !found || currentStage < 0 || currentStage >= MaxStage {
		return 0, false
	}
	return curve.Costs[currentStage], true
}

// CumulativeBonus returns the total stat bonus at the given stage.
func (c *ModCatalog) CumulativeBonus(mod Mod, stage int) int {
	curve, found := c.curves[mod]
	if !found || stage <= 0 {
		return 0
	}
	if stage > MaxStage {
		stage = MaxStage
	}
	return curve.Bonuses[stage-1]
}

// Curve exposes the raw table for a mod (tuning shop screens).
func (c *ModCatalog) Curve(mod Mod) (ModCurve, bool) {
	curve, found := c.curves[mod]
	return curve, found
}
