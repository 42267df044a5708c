package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/WeltonSantosFr/guitaa-api/internal/api"
	"github.com/WeltonSantosFr/guitaa-api/internal/auth"
	"github.com/WeltonSantosFr/guitaa-api/internal/config"
	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
	"github.com/WeltonSantosFr/guitaa-api/internal/persistence/postgres"
	httptransport "github.com/WeltonSantosFr/guitaa-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Print("loaded environment from .env")
	}
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	exerciseRepo := postgres.NewExerciseRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)

	userService := domain.NewUserService(userRepo, cfg.BcryptCost)
	exerciseService := domain.NewExerciseService(exerciseRepo, historyRepo)
	historyService := domain.NewHistoryService(historyRepo, exerciseRepo)

	authCfg := auth.Config{Secret: cfg.SecretKey, Issuer: cfg.JWTIssuer, TTL: cfg.TokenTTL}

	handler := api.NewHandler(userService, exerciseService, historyService, authCfg)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	authMiddleware := auth.NewMiddleware(authCfg, api.PublicRoute)
	cors := httptransport.CORS(cfg.CORSOrigin)

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address: cfg.HTTPAddress,
	}, httptransport.RequestLogger(cors(authMiddleware.Wrap(mux))))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("guitaa-api listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
