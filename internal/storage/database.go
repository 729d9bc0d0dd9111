package storage

import (
	"github.com/gearclash/gearclash/internal/game"
	"github.com/gearclash/gearclash/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDB opens the SQLite database, migrates the schema and seeds the card
// catalog from config on first run.
func OpenDB(dataSourceName string, cardsFromConfig []game.Card) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.User{},
		&game.Card{},
		&game.TunedCar{},
		&game.DealtHand{},
		&game.Challenge{},
		&game.RoundResult{},
	)
	if err != nil {
		return nil, err
	}

	seedDefaultCards(db, cardsFromConfig)
	return db, nil
}

// seedDefaultCards inserts the configured card catalog once so a fresh
// database is playable. Battle stats are intentionally not persisted: reads
// always take them from config.
func seedDefaultCards(db *gorm.DB, cardsFromConfig []game.Card) {
	var count int64
	db.Model(&game.Card{}).Count(&count)
	if count > 0 {
		return
	}
	if len(cardsFromConfig) == 0 {
		return
	}
	cards := make([]game.Card, len(cardsFromConfig))
	copy(cards, cardsFromConfig)
	if err := db.Create(&cards).Error; err != nil {
		logging.Error("failed to seed card catalog", err, nil)
		return
	}
	logging.Info("card catalog seeded", logging.Fields{"cards": len(cards)})
}
