package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gearclash/gearclash/internal/game"
)

type cardEntry struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Rarity   string `json:"rarity"`
	Power    int    `json:"power"`
	Torque   int    `json:"torque"`
	TopSpeed int    `json:"top_speed"`
}

type modEntry struct {
	Costs   []int `json:"costs"`
	Bonuses []int `json:"bonuses"`
}

type categoryEntry struct {
	Name         string  `json:"name"`
	PowerWeight  float64 `json:"power_weight"`
	TorqueWeight float64 `json:"torque_weight"`
	SpeedWeight  float64 `json:"speed_weight"`
}

type rawConfig struct {
	CardList         []cardEntry          `json:"card_list"`
	ModCatalog       map[string]modEntry  `json:"mod_catalog"`
	BattleCategories []categoryEntry      `json:"battle_categories"`
	Rewards          *struct {
		WinXP  int `json:"win_xp"`
		LoseXP int `json:"lose_xp"`
		DrawXP int `json:"draw_xp"`
	} `json:"rewards"`
	WeeklyChallengeCap int `json:"weekly_challenge_cap"`
	ChallengeTTLHours  int `json:"challenge_ttl_hours"`
	Server             *struct {
		Address string `json:"address"`
	} `json:"server"`
}

// Rewards holds the configured XP payouts for a completed challenge.
type Rewards struct {
	WinXP  int
	LoseXP int
	DrawXP int
}

// LoadedConfig contains the card catalog to seed, the tuning/battle tables
// and the server settings. Everything balance-related lives here so tests
// can exercise alternate settings.
type LoadedConfig struct {
	Cards      []game.Card
	Catalog    *game.ModCatalog
	Categories []game.Category
	Rewards    Rewards

	WeeklyChallengeCap int
	ChallengeTTL       time.Duration

	ServerAddress string
}

// CategoryByName returns the configured category preset, if any.
func (c *LoadedConfig) CategoryByName(name string) (game.Category, bool) {
	for _, cat := range c.Categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return game.Category{}, false
}

// LoadConfig reads the configuration file at path and validates it. It
// requires `card_list`, `mod_catalog` (one entry per mod with exactly three
// costs and three cumulative bonuses) and `battle_categories`.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.CardList) == 0 {
		return nil, fmt.Errorf("config file %s: card_list is empty (provide a 'card_list' array)", path)
	}
	cards := make([]game.Card, 0, len(rc.CardList))
	nameSet := make(map[string]struct{}, len(rc.CardList))
	for _, ce := range rc.CardList {
		if ce.Name == "" {
			return nil, fmt.Errorf("config file %s: card entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(ce.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate card name '%s'", path, ce.Name)
		}
		nameSet[ln] = struct{}{}
		kind := game.CardKind(ce.Kind)
		if kind == "" {
			kind = game.KindVehicle
		}
		if kind != game.KindVehicle && kind != game.KindOther {
			return nil, fmt.Errorf("config file %s: card '%s' has unknown kind '%s'", path, ce.Name, ce.Kind)
		}
		if kind == game.KindVehicle && (ce.Power <= 0 || ce.Torque <= 0 || ce.TopSpeed <= 0) {
			return nil, fmt.Errorf("config file %s: vehicle card '%s' must have positive power/torque/top_speed", path, ce.Name)
		}
		cards = append(cards, game.Card{
			Name:     ce.Name,
			Kind:     kind,
			Rarity:   ce.Rarity,
			Power:    ce.Power,
			Torque:   ce.Torque,
			TopSpeed: ce.TopSpeed,
		})
	}

	curves, err := loadCurves(path, rc.ModCatalog)
	if err != nil {
		return nil, err
	}

	if len(rc.BattleCategories) == 0 {
		return nil, fmt.Errorf("config file %s: battle_categories is empty", path)
	}
	cats := make([]game.Category, 0, len(rc.BattleCategories))
	catSet := make(map[string]struct{}, len(rc.BattleCategories))
	for _, ce := range rc.BattleCategories {
		if ce.Name == "" {
			return nil, fmt.Errorf("config file %s: battle category missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(ce.Name))
		if _, exists := catSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate battle category '%s'", path, ce.Name)
		}
		catSet[ln] = struct{}{}
		if ce.PowerWeight < 0 || ce.TorqueWeight < 0 || ce.SpeedWeight < 0 {
			return nil, fmt.Errorf("config file %s: battle category '%s' has a negative weight", path, ce.Name)
		}
		if ce.PowerWeight+ce.TorqueWeight+ce.SpeedWeight == 0 {
			return nil, fmt.Errorf("config file %s: battle category '%s' has all-zero weights", path, ce.Name)
		}
		cats = append(cats, game.Category{
			Name:         ce.Name,
			PowerWeight:  ce.PowerWeight,
			TorqueWeight: ce.TorqueWeight,
			SpeedWeight:  ce.SpeedWeight,
		})
	}

	rewards := Rewards{WinXP: 30, LoseXP: 20, DrawXP: 10}
	if rc.Rewards != nil {
		rewards = Rewards{WinXP: rc.Rewards.WinXP, LoseXP: rc.Rewards.LoseXP, DrawXP: rc.Rewards.DrawXP}
	}
	// Policy orderings: the winner must come out strictly better than the
	// loser and the draw payout must not exceed either.
	if rewards.WinXP <= rewards.LoseXP {
		return nil, fmt.Errorf("config file %s: rewards.win_xp must be greater than rewards.lose_xp", path)
	}
	if rewards.DrawXP < 0 || rewards.DrawXP > rewards.LoseXP {
		return nil, fmt.Errorf("config file %s: rewards.draw_xp must be between 0 and rewards.lose_xp", path)
	}

	weeklyCap := rc.WeeklyChallengeCap
	if weeklyCap == 0 {
		weeklyCap = 3
	}
	if weeklyCap < 0 {
		return nil, fmt.Errorf("config file %s: weekly_challenge_cap must be positive", path)
	}

	ttlHours := rc.ChallengeTTLHours
	if ttlHours == 0 {
		ttlHours = 48
	}
	if ttlHours < 0 {
		return nil, fmt.Errorf("config file %s: challenge_ttl_hours must be positive", path)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &LoadedConfig{
		Cards:              cards,
		Catalog:            game.NewModCatalog(curves),
		Categories:         cats,
		Rewards:            rewards,
		WeeklyChallengeCap: weeklyCap,
		ChallengeTTL:       time.Duration(ttlHours) * time.Hour,
		ServerAddress:      addr,
	}, nil
}

func loadCurves(path string, raw map[string]modEntry) (map[game.Mod]game.ModCurve, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("config file %s: mod_catalog is empty", path)
	}
	curves := make(map[game.Mod]game.ModCurve, len(raw))
	for name, entry := range raw {
		mod, ok := game.ParseMod(name)
		if !ok {
			return nil, fmt.Errorf("config file %s: unknown mod '%s' in mod_catalog", path, name)
		}
		if len(entry.Costs) != game.MaxStage || len(entry.Bonuses) != game.MaxStage {
			return nil, fmt.Errorf("config file %s: mod '%s' needs exactly %d costs and %d bonuses", path, name, game.MaxStage, game.MaxStage)
		}
		var curve game.ModCurve
		prevBonus := 0
		for i := 0; i < game.MaxStage; i++ {
			if entry.Costs[i] <= 0 {
				return nil, fmt.Errorf("config file %s: mod '%s' stage %d has non-positive cost", path, name, i+1)
			}
			if entry.Bonuses[i] < prevBonus {
				return nil, fmt.Errorf("config file %s: mod '%s' bonuses must be non-decreasing", path, name)
			}
			curve.Costs[i] = entry.Costs[i]
			curve.Bonuses[i] = entry.Bonuses[i]
			prevBonus = entry.Bonuses[i]
		}
		curves[mod] = curve
	}
	for _, mod := range game.Mods {
		if _, ok := curves[mod]; !ok {
			return nil, fmt.Errorf("config file %s: mod_catalog missing entry for '%s'", path, mod)
		}
	}
	return curves, nil
}
