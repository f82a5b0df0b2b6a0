package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"holdout/internal/api"
	"holdout/internal/config"
	"holdout/internal/sim"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables only")
	}

	appConfig := config.Load()
	simCfg := appConfig.Sim
	serverCfg := appConfig.Server

	log.Printf("holdout engine starting: %d TPS, wave %ds, intermission %ds",
		simCfg.TickRate, simCfg.WaveSeconds, simCfg.IntermissionSeconds)

	engine := sim.NewEngine(sim.Config{
		TickRate:       simCfg.TickRate,
		WaveDurationMS: int64(simCfg.WaveSeconds) * 1000,
		IntermissionMS: int64(simCfg.IntermissionSeconds) * 1000,
		Seed:           simCfg.Seed,
	})
	log.Printf("rng seed: %d", engine.Seed())

	// event journal
	eventLog := sim.NewEventLog()
	if err := eventLog.Start(serverCfg.EventLogPath); err != nil {
		log.Printf("event log disabled: %v", err)
	} else {
		log.Printf("event log: %s", serverCfg.EventLogPath)
		engine.AttachEventLog(eventLog)
	}

	// metrics plumbing: tick latency plus periodic gauge refresh
	engine.OnTick = func(elapsed time.Duration) {
		api.RecordTick(elapsed)
		snap := engine.Snapshot()
		api.UpdateSimGauges(len(snap.Enemies), len(snap.Bullets), snap.Wave.Number)
		api.UpdateEventLogDropped(eventLog.DroppedCount())
	}

	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
			log.Printf("debug server disabled: %v", err)
		}
	}

	server := api.NewServer(api.ServerConfig{
		Engine:        engine,
		StatePushHz:   serverCfg.StatePushHz,
		AllowedOrigin: serverCfg.AllowedOrigin,
	})

	engine.Start()
	log.Println("simulation running")

	go func() {
		addr := ":" + strconv.Itoa(serverCfg.Port)
		if err := server.Start(addr); err != nil {
			log.Fatalf("api server: %v", err)
		}
	}()

	// graceful shutdown on SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("shutting down")
	engine.Stop()
	server.Stop()
	eventLog.Stop()
}
