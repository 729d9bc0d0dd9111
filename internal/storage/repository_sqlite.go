package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/gearclash/gearclash/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// configByName maps lowercase card name -> config definition (stats).
	configByName map[string]game.Card
}

func NewSQLiteRepository(db *gorm.DB, configCards []game.Card) Repository {
	m := make(map[string]game.Card, len(configCards))
	for _, c := range configCards {
		m[strings.ToLower(c.Name)] = c
	}
	return &sqliteRepository{db: db, configByName: m}
}

// applyConfigStats fills the non-persisted battle stats from config
// (config is source of truth).
func (r *sqliteRepository) applyConfigStats(cards []game.Card) {
	if r.configByName == nil {
		return
	}
	for i := range cards {
		if conf, ok := r.configByName[strings.ToLower(cards[i].Name)]; ok {
			cards[i].Power = conf.Power
			cards[i].Torque = conf.Torque
			cards[i].TopSpeed = conf.TopSpeed
		}
	}
}

func (r *sqliteRepository) GetUserByID(id uint) (*game.User, error) {
	var u game.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) UpsertUser(email, name string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		u = game.User{Email: email}
	}
	u.Name = name
	if err := r.db.Save(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) CreditXP(userID uint, amount int) error {
	return creditXPTx(r.db, userID, amount)
}

func creditXPTx(tx *gorm.DB, userID uint, amount int) error {
	res := tx.Model(&game.User{}).Where("id = ?", userID).
		Update("xp_earned", gorm.Expr("xp_earned + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) AvailableXP(userID uint) (earned, invested int, err error) {
	return availableXPTx(r.db, userID)
}

func availableXPTx(tx *gorm.DB, userID uint) (earned, invested int, err error) {
	var u game.User
	if err := tx.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, game.ErrNotFound
		}
		return 0, 0, err
	}
	var sum *int
	if err := tx.Model(&game.TunedCar{}).Where("user_id = ?", userID).
		Select("SUM(xp_invested)").Scan(&sum).Error; err != nil {
		return 0, 0, err
	}
	if sum != nil {
		invested = *sum
	}
	return u.XPEarned, invested, nil
}

func (r *sqliteRepository) ListEligibleCards(userID uint) ([]game.Card, error) {
	var cards []game.Card
	if err := r.db.Where("owner_id = ? AND kind = ?", userID, game.KindVehicle).
		Find(&cards).Error; err != nil {
		return nil, err
	}
	r.applyConfigStats(cards)
	return cards, nil
}

func (r *sqliteRepository) GetCardsByIDs(ids []uint) ([]game.Card, error) {
	var cards []game.Card
	if err := r.db.Where("id IN ?", ids).Find(&cards).Error; err != nil {
		return nil, err
	}
	r.applyConfigStats(cards)
	return cards, nil
}

func (r *sqliteRepository) GetTunedCarByID(id uint) (*game.TunedCar, error) {
	var tc game.TunedCar
	if err := r.db.First(&tc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrNotFound
		}
		return nil, err
	}
	return &tc, nil
}

func (r *sqliteRepository) GetTunedCarForCard(userID, cardID uint) (*game.TunedCar, error) {
	var tc game.TunedCar
	err := r.db.Where("user_id = ? AND card_id = ?", userID, cardID).First(&tc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrNotFound
		}
		return nil, err
	}
	return &tc, nil
}

func (r *sqliteRepository) ListTunedCars(userID uint) ([]game.TunedCar, error) {
	var tcs []game.TunedCar
	if err := r.db.Where("user_id = ?", userID).Order("created_at asc").Find(&tcs).Error; err != nil {
		return nil, err
	}
	return tcs, nil
}

func (r *sqliteRepository) CreateTunedCar(tc *game.TunedCar) error {
	var count int64
	if err := r.db.Model(&game.TunedCar{}).
		Where("user_id = ? AND card_id = ?", tc.UserID, tc.CardID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return game.ErrAlreadyTuned
	}
	if err := r.db.Create(tc).Error; err != nil {
		// The unique index covers the race between the check and the insert.
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return game.ErrAlreadyTuned
		}
		return err
	}
	return nil
}

func (r *sqliteRepository) RemoveTunedCar(tc *game.TunedCar) error {
	res := r.db.Delete(&game.TunedCar{}, tc.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrNotFound
	}
	return nil
}

// ApplyUpgrade re-reads the tuned car, recomputes the available balance and
// commits the stage increment inside one transaction. SQLite's single
// writer makes the transaction the per-user serialization boundary, so two
// concurrent upgrades cannot both pass the balance check.
func (r *sqliteRepository) ApplyUpgrade(tunedCarID uint, mod game.Mod, catalog *game.ModCatalog) (*game.TunedCar, error) {
	var out game.TunedCar
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var tc game.TunedCar
		if err := tx.First(&tc, tunedCarID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return game.ErrNotFound
			}
			return err
		}
		cost, ok := catalog.UpgradeCost(mod, tc.Stage(mod))
		if !ok {
			return game.ErrMaxStageReached
		}
		earned, invested, err := availableXPTx(tx, tc.UserID)
		if err != nil {
			return err
		}
		if earned-invested < cost {
			return game.ErrInsufficientXP
		}
		tc.SetStage(mod, tc.Stage(mod)+1)
		tc.XPInvested += cost
		if err := tx.Save(&tc).Error; err != nil {
			return err
		}
		out = tc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sqliteRepository) GetOpenHand(userID uint) (*game.DealtHand, error) {
	var h game.DealtHand
	err := r.db.Where("user_id = ? AND consumed = ?", userID, false).
		Order("created_at desc").First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (r *sqliteRepository) CreateHand(h *game.DealtHand) error {
	return r.db.Create(h).Error
}

func (r *sqliteRepository) ConsumeHand(handID uint) error {
	res := r.db.Model(&game.DealtHand{}).Where("id = ? AND consumed = ?", handID, false).
		Update("consumed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) CreateChallenge(ch *game.Challenge) error {
	return r.db.Create(ch).Error
}

func (r *sqliteRepository) GetChallengeByID(id uint) (*game.Challenge, error) {
	var ch game.Challenge
	if err := r.db.Preload("Rounds").First(&ch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrNotFound
		}
		return nil, err
	}
	return &ch, nil
}

func (r *sqliteRepository) ListOpenChallenges(now time.Time) ([]game.Challenge, error) {
	var chs []game.Challenge
	if err := r.db.Where("status = ? AND opponent_id IS NULL AND expires_at > ?", game.StatusPending, now).
		Order("created_at desc").Find(&chs).Error; err != nil {
		return nil, err
	}
	return chs, nil
}

func (r *sqliteRepository) ListChallengesForUser(userID uint) ([]game.Challenge, error) {
	var chs []game.Challenge
	if err := r.db.Preload("Rounds").
		Where("challenger_id = ? OR opponent_id = ?", userID, userID).
		Order("created_at desc").Find(&chs).Error; err != nil {
		return nil, err
	}
	return chs, nil
}

func (r *sqliteRepository) CountChallengesCreatedSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&game.Challenge{}).
		Where("challenger_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

// CompleteChallenge commits the resolution. The status update is a
// compare-and-swap against pending so exactly one of two concurrent accept
// calls wins; reward deltas ride in the same transaction, and a transfer
// whose card changed hands since validation aborts the whole commit.
func (r *sqliteRepository) CompleteChallenge(ch *game.Challenge, credits []game.XPCredit, transfers []game.CardTransfer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&game.Challenge{}).
			Where("id = ? AND status = ?", ch.ID, game.StatusPending).
			Updates(map[string]interface{}{
				"status":                  game.StatusCompleted,
				"opponent_id":             ch.OpponentID,
				"opponent_power_card_id":  ch.OpponentPowerCardID,
				"opponent_torque_card_id": ch.OpponentTorqueCardID,
				"opponent_speed_card_id":  ch.OpponentSpeedCardID,
				"opponent_card_id":        ch.OpponentCardID,
				"challenger_score":        ch.ChallengerScore,
				"opponent_score":          ch.OpponentScore,
				"winner_id":               ch.WinnerID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return game.ErrAlreadyResolved
		}
		for i := range ch.Rounds {
			ch.Rounds[i].ChallengeID = ch.ID
			if err := tx.Create(&ch.Rounds[i]).Error; err != nil {
				return err
			}
		}
		for _, cr := range credits {
			if err := creditXPTx(tx, cr.UserID, cr.Amount); err != nil {
				return err
			}
		}
		for _, tr := range transfers {
			res := tx.Model(&game.Card{}).
				Where("id = ? AND owner_id = ?", tr.CardID, tr.FromUserID).
				Update("owner_id", tr.ToUserID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return game.ErrCardNoLongerOwned
			}
		}
		return nil
	})
}

func (r *sqliteRepository) MarkChallengeStatus(id uint, from, to game.ChallengeStatus) error {
	res := r.db.Model(&game.Challenge{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrAlreadyResolved
	}
	return nil
}

// ExpireOverdueChallenges flips overdue pending challenges to expired. The
// read and accept paths still check expires_at themselves; this sweep only
// keeps stored rows from lingering as pending.
func (r *sqliteRepository) ExpireOverdueChallenges(now time.Time) (int64, error) {
	res := r.db.Model(&game.Challenge{}).
		Where("status = ? AND expires_at <= ?", game.StatusPending, now).
		Update("status", game.StatusExpired)
	return res.RowsAffected, res.Error
}
