package main

import (
	"log"
	"os"
	"time"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustParseDuration(envKey, def string) time.Duration {
	raw := getenv(envKey, def)
	dur, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("songboard: invalid %s %q: %v", envKey, raw, err)
	}
	return dur
}
