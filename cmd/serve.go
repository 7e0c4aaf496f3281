package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"savings-planner/config"
	httpLayer "savings-planner/http"
	"savings-planner/repository"
	"savings-planner/scheduler"
	"savings-planner/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type backends struct {
	plans        repository.PlanRepository
	calculations repository.CalculationRepository
	cache        repository.CacheRepository
	closers      []func() error
}

func (b *backends) close() {
	for _, c := range b.closers {
		if err := c(); err != nil {
			log.Printf("[WARN] error closing backend: %v", err)
		}
	}
}

// openBackends uses SQLite and Redis when configured and falls back to the
// in-memory implementations otherwise.
func openBackends(cfg *config.Config) (*backends, error) {
	b := &backends{}

	if cfg.Database.SQLitePath != "" {
		store, err := repository.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.plans = store
		b.calculations = store.CalculationLog()
		b.closers = append(b.closers, store.Close)
	} else {
		log.Println("[INFO] no sqlite_path configured, plans are kept in memory")
		b.plans = repository.NewPlanRepositoryMemory()
		b.calculations = repository.NewCalculationRepositoryMemory()
	}

	b.cache = repository.NewMockCache()
	if cfg.Redis.Addr != "" {
		redisCache := repository.NewRedisCache(cfg.Redis.Addr, cfg.Redis.TTL)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("[WARN] redis %s unreachable, using in-memory cache: %v", cfg.Redis.Addr, err)
			_ = redisCache.Close()
		} else {
			b.cache = redisCache
			b.closers = append(b.closers, redisCache.Close)
		}
	}

	return b, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limits, err := cfg.ServiceLimits()
	if err != nil {
		return err
	}

	b, err := openBackends(cfg)
	if err != nil {
		return err
	}
	defer b.close()

	projectionService := service.NewProjectionService(b.calculations, b.cache, limits)
	scenarioService := service.NewScenarioService(projectionService)
	planService := service.NewPlanService(b.plans, projectionService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	mux := httpLayer.NewRouter(httpLayer.Handlers{
		Projection: httpLayer.NewProjectionHandler(projectionService),
		Scenario:   httpLayer.NewScenarioHandler(scenarioService),
		Plan:       httpLayer.NewPlanHandler(planService),
	}, rateLimiter)

	if cfg.Schedule.RefreshCron != "" {
		sched := scheduler.New(planService)
		if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("[INFO] API corriendo en %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-quit:
		log.Println("[INFO] shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] error during server shutdown: %v", err)
	}

	log.Println("[INFO] server exited")
	return nil
}
