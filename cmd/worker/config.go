package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// WorkerConfig is the slice of configuration the worker process needs
// beyond what the shared container loads.
type WorkerConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
}

func loadWorkerConfig() *WorkerConfig {
	cfg := &WorkerConfig{
		RedisAddr:     getEnv("REDIS_HOST", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		Concurrency:   getEnvInt("WORKER_CONCURRENCY", 10),
	}

	log.Info().
		Str("redis", cfg.RedisAddr).
		Int("concurrency", cfg.Concurrency).
		Msg("Worker config loaded")

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
