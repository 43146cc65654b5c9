package main

import (
	"os"

	"github.com/veldt-games/riposte/internal/api"
	"github.com/veldt-games/riposte/internal/catalog"
	"github.com/veldt-games/riposte/internal/constants"
	"github.com/veldt-games/riposte/internal/logging"
	"github.com/veldt-games/riposte/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Configuration path may be provided via RIPOSTE_CONFIG or defaults to
	// ./riposte_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./riposte_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/riposte.db"
	}
	repo := createRepositoryOrExit(dbPath)

	cat := catalog.New(cfg.PlayerCards, cfg.EnemyCards)
	hub := ws.NewHub()

	battles := api.NewBattleHandler(repo, cat, hub, cfg.Battle, cfg.ActionTimeout)
	auth := api.NewAuthHandler(repo)

	startTimeoutScanner(repo)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteCards, battles.ListCards)
		apiRoutes.GET(constants.RouteLeaderboard, battles.ListLeaderboard)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePlayerStats, auth.PlayerStats)
		protected.POST(constants.RouteBattles, battles.CreateBattle)
		protected.GET(constants.RouteBattles, battles.ListBattles)
		protected.GET(constants.RouteBattleByCode, battles.GetBattle)
		protected.POST(constants.RouteBattleTurn, battles.SubmitTurn)
		protected.POST(constants.RouteBattleStep, battles.Step)
		protected.POST(constants.RouteBattleChoice, battles.Choice)
		protected.POST(constants.RouteBattleTarget, battles.Target)
		protected.POST(constants.RouteBattleEnd, battles.End)
		protected.GET(constants.RouteBattleFeed, battles.Feed)
	}

	router.POST(constants.RouteAuthGoogleCallBack, auth.GoogleOAuthCallback)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
