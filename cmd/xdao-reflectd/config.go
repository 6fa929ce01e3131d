package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the daemon's settings. Flags override file values.
type Config struct {
	Listen        string
	MetricsListen string
	Backend       string
	UnitAddr      string
	MaxMsgBytes   int
}

func DefaultConfig() Config {
	return Config{
		Listen:        "127.0.0.1:7878",
		MetricsListen: "",
		Backend:       "localfs",
		UnitAddr:      "reflector",
		MaxMsgBytes:   0,
	}
}

type fileConfig struct {
	Listen        string `toml:"listen"`
	MetricsListen string `toml:"metrics_listen"`
	Backend       string `toml:"backend"`
	UnitAddr      string `toml:"unit_addr"`
	MaxMsgBytes   int    `toml:"max_msg_bytes"`
}

func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load reflectd config: %w", err)
	}

	if meta.IsDefined("listen") {
		cfg.Listen = strings.TrimSpace(raw.Listen)
	}
	if meta.IsDefined("metrics_listen") {
		cfg.MetricsListen = strings.TrimSpace(raw.MetricsListen)
	}
	if meta.IsDefined("backend") {
		cfg.Backend = strings.TrimSpace(raw.Backend)
	}
	if meta.IsDefined("unit_addr") {
		cfg.UnitAddr = strings.TrimSpace(raw.UnitAddr)
	}
	if meta.IsDefined("max_msg_bytes") {
		cfg.MaxMsgBytes = raw.MaxMsgBytes
	}
	return cfg, nil
}
