// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for tunable settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// SimConfig holds the core simulation settings.
type SimConfig struct {
	TickRate            int   // Simulation ticks per second
	WaveSeconds         int   // Active wave phase length
	IntermissionSeconds int   // Breather between waves
	Seed                int64 // RNG seed; 0 means derive from wall clock
}

// DefaultSim returns the default simulation configuration.
func DefaultSim() SimConfig {
	return SimConfig{
		TickRate:            60,
		WaveSeconds:         30,
		IntermissionSeconds: 60,
	}
}

// SimFromEnv returns simulation configuration with environment variable
// overrides. Environment variables take precedence over defaults.
func SimFromEnv() SimConfig {
	cfg := DefaultSim()

	if tr := getEnvInt("SIM_TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if ws := getEnvInt("SIM_WAVE_SECONDS", 0); ws > 0 {
		cfg.WaveSeconds = ws
	}
	if is := getEnvInt("SIM_INTERMISSION_SECONDS", 0); is > 0 {
		cfg.IntermissionSeconds = is
	}
	if s := getEnvInt64("SIM_SEED", 0); s != 0 {
		cfg.Seed = s
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          int
	MaxWSClients  int // Hard cap on concurrent websocket clients
	StatePushHz   int // Snapshot broadcast rate over websocket
	EventLogPath  string
	AllowedOrigin string
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:         3000,
		MaxWSClients: 100,
		StatePushHz:  20,
		EventLogPath: "events.jsonl",
	}
}

// ServerFromEnv returns server configuration with environment variable
// overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if mc := getEnvInt("MAX_WS_CLIENTS", 0); mc > 0 {
		cfg.MaxWSClients = mc
	}
	if hz := getEnvInt("STATE_PUSH_HZ", 0); hz > 0 {
		cfg.StatePushHz = hz
	}
	if p := os.Getenv("EVENT_LOG_PATH"); p != "" {
		cfg.EventLogPath = p
	}
	if o := os.Getenv("ALLOWED_ORIGIN"); o != "" {
		cfg.AllowedOrigin = o
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sim    SimConfig
	Server ServerConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Sim:    SimFromEnv(),
		Server: ServerFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}
