package main

import (
	"os"

	"github.com/gearclash/gearclash/internal/api"
	"github.com/gearclash/gearclash/internal/constants"
	"github.com/gearclash/gearclash/internal/logging"
	"github.com/gearclash/gearclash/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load a local .env when present; real deployments set the environment
	// directly.
	_ = godotenv.Load()
	checkEnvVars([]string{constants.EnvSessionSecret})

	// Load the card/tuning configuration file (required). Path may be
	// provided via GEARCLASH_CONFIG or defaults to ./gearclash_config.json
	// in the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./gearclash_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	// Allow the DB path to be configured via GEARCLASH_DB. Default to a
	// `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/gearclash.db"
	}
	repo := createRepositoryOrExit(dbPath, cfg)

	settings := buildSettings(cfg)
	notifier := notify.LogNotifier{}
	handler := api.NewBattleHandler(repo, settings, notifier)
	authHandler := api.NewAuthHandler(repo)

	sched := startExpirySweeper(repo)
	defer func() { _ = sched.Shutdown() }()

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteCategories, handler.ListCategories)
		apiRoutes.GET(constants.RouteMods, handler.ListMods)
		apiRoutes.POST(constants.RouteDevToken, authHandler.DevToken)
		apiRoutes.POST(constants.RouteLogout, authHandler.Logout)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RouteMe, authHandler.Me)
		protected.GET(constants.RouteCards, handler.ListCards)
		protected.GET(constants.RouteBalance, handler.GetBalance)

		protected.POST(constants.RouteDeals, handler.DealHand)
		protected.GET(constants.RouteOpenDeal, handler.OpenHand)

		protected.POST(constants.RouteTunedCars, handler.AddTunedCar)
		protected.GET(constants.RouteTunedCars, handler.ListTunedCars)
		protected.DELETE(constants.RouteTunedCarByID, handler.RemoveTunedCar)
		protected.POST(constants.RouteTunedCarUpgrade, handler.UpgradeTunedCar)

		protected.POST(constants.RouteChallenges, handler.CreateChallenge)
		protected.GET(constants.RouteChallenges, handler.ListChallenges)
		protected.GET(constants.RouteChallengeByID, handler.GetChallenge)
		protected.POST(constants.RouteChallengeAccept, handler.AcceptChallenge)
		protected.POST(constants.RouteChallengeDecline, handler.DeclineChallenge)
	}

	addr := cfg.ServerAddress
	// For logging present a http://localhost:PORT style when address starts with ':'
	displayAddr := addr
	if len(addr) > 0 && addr[0] == ':' {
		displayAddr = "http://localhost" + addr
	}
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: displayAddr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
