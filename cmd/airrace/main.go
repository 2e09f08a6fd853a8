// cmd/airrace/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/opd-ai/go-airrace/pkg/config"
	"github.com/opd-ai/go-airrace/pkg/engine"
	"github.com/opd-ai/go-airrace/pkg/entity"
	"github.com/opd-ai/go-airrace/pkg/event"
	"github.com/opd-ai/go-airrace/pkg/health"
	"github.com/opd-ai/go-airrace/pkg/input"
	"github.com/opd-ai/go-airrace/pkg/logging"
	"github.com/opd-ai/go-airrace/pkg/resource"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to race configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	scriptPath := flag.String("script", "", "Path to a JSON control script (built-in demo script if empty)")
	aircraftName := flag.String("name", "player-1", "Aircraft name")
	aircraftClass := flag.String("class", "trainer", "Aircraft class: trainer, stunt or racer")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		defaultConfig := config.DefaultConfig()
		if err := config.SaveConfig(defaultConfig, *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	// Load configuration
	var gameConfig *config.GameConfig

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", *configPath,
		)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	}

	envConfig, err := config.LoadConfigFromEnv()
	if err != nil {
		logger.Error(ctx, "Failed to load environment configuration", err)
		os.Exit(1)
	}

	class, err := parseClass(*aircraftClass)
	if err != nil {
		logger.Error(ctx, "Unknown aircraft class", err,
			"class", *aircraftClass,
		)
		os.Exit(1)
	}

	script, err := loadScript(*scriptPath)
	if err != nil {
		logger.Error(ctx, "Failed to load control script", err,
			"script_path", *scriptPath,
		)
		os.Exit(1)
	}

	// Create the race session
	game, err := engine.NewGame(gameConfig)
	if err != nil {
		logger.Error(ctx, "Failed to create race", err)
		os.Exit(1)
	}

	aircraft, err := game.SpawnAircraft(*aircraftName, class)
	if err != nil {
		logger.Error(ctx, "Failed to spawn aircraft", err)
		os.Exit(1)
	}

	// Log race progress as it happens
	game.EventBus.Subscribe(event.CheckpointPassed, func(e event.Event) {
		ce := e.(*event.CheckpointEvent)
		logger.Info(ctx, "Checkpoint passed",
			"aircraft_id", ce.AircraftID,
			"checkpoint", ce.Checkpoint,
			"elapsed", fmt.Sprintf("%.2fs", ce.Elapsed),
		)
	})
	game.EventBus.Subscribe(event.RaceCompleted, func(e event.Event) {
		re := e.(*event.RaceEvent)
		logger.Info(ctx, "Race completed",
			"aircraft_id", re.AircraftID,
			"gates", re.GatesPassed,
			"score", re.Score,
			"elapsed", fmt.Sprintf("%.2fs", re.Elapsed),
		)
	})
	game.EventBus.Subscribe(event.CountdownExpired, func(e event.Event) {
		re := e.(*event.RaceEvent)
		logger.Warn(ctx, "Countdown expired",
			"aircraft_id", re.AircraftID,
			"gates", re.GatesPassed,
		)
	})

	raceDone := make(chan struct{})
	game.EventBus.Subscribe(event.GameEnded, func(event.Event) {
		close(raceDone)
	})

	// Resource supervision and health endpoints
	resourceManager := resource.NewManager(envConfig)
	if err := resourceManager.Start(); err != nil {
		logger.Error(ctx, "Failed to start resource manager", err)
		os.Exit(1)
	}

	var loopRunning int32
	healthChecker := health.NewHealthChecker()
	healthChecker.AddCheck(health.NewSimulationHealthCheck(
		func() bool { return atomic.LoadInt32(&loopRunning) == 1 },
	))
	healthChecker.AddCheck(health.NewMemoryHealthCheck(envConfig.MaxMemoryMB, func() int64 {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return int64(m.Alloc / 1024 / 1024)
	}))
	healthChecker.AddCheck(resource.NewHealthCheck(resourceManager))

	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/health", healthChecker.LivenessHandler)
	healthMux.HandleFunc("/ready", healthChecker.ReadinessHandler)

	healthServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", envConfig.HealthPort),
		Handler:      healthMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	if err := resourceManager.Go(ctx, "health_server", func(context.Context) {
		logger.Info(ctx, "Starting health check server",
			"port", envConfig.HealthPort,
		)
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Health check server failed", err)
		}
	}); err != nil {
		logger.Error(ctx, "Failed to start health server", err)
		os.Exit(1)
	}

	// Run the race loop: script input each frame, then as many fixed
	// physics steps as the elapsed wall-clock time covers.
	loopCtx, stopLoop := context.WithCancel(ctx)
	game.Start()
	logger.Info(ctx, "Race started",
		"aircraft", aircraft.Name,
		"class", *aircraftClass,
		"gates", len(game.Track),
		"update_rate", envConfig.UpdateRate,
	)

	if err := resourceManager.Go(loopCtx, "race_loop", func(loopCtx context.Context) {
		atomic.StoreInt32(&loopRunning, 1)
		defer atomic.StoreInt32(&loopRunning, 0)

		ticker := time.NewTicker(time.Second / time.Duration(envConfig.UpdateRate))
		defer ticker.Stop()

		last := time.Now()
		for {
			select {
			case now := <-ticker.C:
				dt := now.Sub(last).Seconds()
				last = now
				script.Apply(aircraft.Model, game.ElapsedTime)
				game.Update(dt)
			case <-loopCtx.Done():
				return
			}
		}
	}); err != nil {
		logger.Error(ctx, "Failed to start race loop", err)
		os.Exit(1)
	}

	// Run until the race ends or we are told to stop
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-raceDone:
		logger.Info(ctx, "Race finished")
	case sig := <-sigChan:
		logger.Info(ctx, "Shutting down",
			"signal", sig.String(),
		)
		game.Stop()
	}
	stopLoop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), envConfig.ShutdownTimeout)
	defer cancel()

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Health check server shutdown failed", err)
	}
	if err := resourceManager.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Resource manager shutdown failed", err)
	}

	logger.Info(ctx, "Final standings",
		"aircraft", aircraft.Name,
		"gates", aircraft.GatesPassed,
		"score", aircraft.Score,
		"speed_band", game.SpeedColor(aircraft),
	)
}

// parseClass maps a flag value onto an aircraft class.
func parseClass(name string) (entity.AircraftClass, error) {
	switch strings.ToLower(name) {
	case "trainer":
		return entity.Trainer, nil
	case "stunt":
		return entity.Stunt, nil
	case "racer":
		return entity.Racer, nil
	default:
		return 0, fmt.Errorf("unknown aircraft class %q", name)
	}
}

// loadScript reads a JSON control script, falling back to a built-in
// full-throttle demo when no path is given.
func loadScript(path string) (*input.Script, error) {
	if path == "" {
		return input.NewScript(demoSegments()), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}
	var segments []input.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("failed to parse script file: %w", err)
	}
	return input.NewScript(segments), nil
}

// demoSegments ramps the throttle up and holds a gentle climb, enough to
// fly the default course's opening gates.
func demoSegments() []input.Segment {
	return []input.Segment{
		{Start: 0, End: 3, ThrottleDelta: 0.05},
		{Start: 3, End: 6, Pitch: -0.2},
		{Start: 6, End: 600, Pitch: -0.02},
	}
}
