package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"crockpot_twin/internal/handlers"
	"crockpot_twin/internal/logger"
	"crockpot_twin/internal/mqtt"
	"crockpot_twin/internal/observability"
	"crockpot_twin/internal/repository"
	"crockpot_twin/internal/repository/db"
	"crockpot_twin/internal/server"
	"crockpot_twin/internal/service"
	"crockpot_twin/internal/sim"
)

const defaultSimTick = 1 * time.Second

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	log := logger.Get(logger.InfoLevel)

	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	database, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	repos := repository.NewRepository(database)
	engine := buildEngine()
	metrics := observability.NewMetrics()

	// Context for background goroutines.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	observer := service.StatusObserver(metrics)
	mqttClient := connectMQTT(engine, repos, log)
	if mqttClient != nil {
		defer mqttClient.Close()
		observer = service.ComposeObservers(metrics, mqttClient)
	}

	services := service.NewService(service.Deps{
		Engine:        engine,
		Repos:         repos,
		Observer:      observer,
		JWTSigningKey: signingKey(log),
	})
	apiHandler := handlers.NewHandler(services, log, metrics.Handler())

	// Drive the twin at one tick per second.
	go services.Runner.Run(ctx, defaultSimTick)

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "crockpot.db")
		dbPath = "crockpot.db"
	}
	return db.Open(dbPath)
}

// buildEngine assembles the simulation core from configuration.
func buildEngine() *service.Engine {
	cfg := sim.DefaultConfig()
	if v := viper.GetFloat64("sim.safety_temp_f"); v > 0 {
		cfg.SafetyTempF = v
	}
	if v := viper.GetInt("sim.control_interval_ms"); v > 0 {
		cfg.ControlIntervalMS = v
	}

	history := sim.NewHistory(
		viper.GetInt("history.interval_seconds"),
		viper.GetInt("history.max_entries"),
	)

	schedulesPath := viper.GetString("schedules.path")
	if schedulesPath == "" {
		schedulesPath = "schedules.json"
	}
	registry := sim.NewRegistry(schedulesPath)

	return service.NewEngine(cfg, nil, history, registry)
}

// connectMQTT builds the broker bridge, or nil when no broker is configured.
func connectMQTT(engine *service.Engine, repos *repository.Repository, log *logger.Logger) *mqtt.Client {
	broker := viper.GetString("mqtt.broker")
	if broker == "" {
		return nil
	}

	client, err := mqtt.NewClient(mqtt.ClientConfig{
		Broker:       broker,
		ClientID:     viper.GetString("mqtt.client_id"),
		Username:     os.Getenv("MQTT_USERNAME"),
		Password:     os.Getenv("MQTT_PASSWORD"),
		StatusTopic:  viper.GetString("mqtt.status_topic"),
		CommandTopic: viper.GetString("mqtt.command_topic"),
	}, service.NewApplianceService(engine, repos.Events), log)
	if err != nil {
		// The twin is useful without a broker; log and continue.
		log.Errorw("mqtt bridge disabled", "err", err)
		return nil
	}
	return client
}

// signingKey resolves the JWT key from the environment or config.
func signingKey(log *logger.Logger) string {
	if key := os.Getenv("JWT_SIGNING_KEY"); key != "" {
		return key
	}
	if key := viper.GetString("jwt.signing_key"); key != "" {
		return key
	}
	log.Warnw("JWT_SIGNING_KEY not set; using insecure default key")
	return "dev-insecure-key"
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// Stop the tick loop and adapters first.
	cancel()

	// Allow in-flight requests to complete.
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
