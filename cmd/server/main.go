package main

import (
	"fmt"
	"log"

	"github.com/stratforsr-sys/bokningsstatistik/internal/cache"
	"github.com/stratforsr-sys/bokningsstatistik/internal/config"
	"github.com/stratforsr-sys/bokningsstatistik/internal/handler"
	"github.com/stratforsr-sys/bokningsstatistik/internal/repository/postgres"
	"github.com/stratforsr-sys/bokningsstatistik/internal/router"
	"github.com/stratforsr-sys/bokningsstatistik/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	meetingRepo := postgres.NewMeetingRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize cache
	statsCache := cache.NewStatsCache(&cfg.Redis)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	meetingSvc := service.NewMeetingService(meetingRepo)
	statsSvc := service.NewStatsService(statsRepo, userRepo, statsCache)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	meetingH := handler.NewMeetingHandler(meetingSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, userH, meetingH, statsH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
