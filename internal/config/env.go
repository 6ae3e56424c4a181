package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv applies environment overrides on top of cfg. Unset or malformed
// variables leave the current value alone.
func FromEnv(cfg *Config) *Config {
	if mode := strings.TrimSpace(os.Getenv("COOKIE_DIFFICULTY")); mode != "" {
		cfg.ApplyDifficulty(mode)
	}
	if dir := os.Getenv("COOKIE_SAVE_DIR"); dir != "" {
		cfg.Save.Dir = dir
	}
	if val, ok := getEnvInt("COOKIE_AUTOSAVE_SECONDS"); ok && val >= 0 {
		cfg.Save.AutosaveSeconds = val
	}
	if val, ok := getEnvInt("COOKIE_SEED"); ok {
		cfg.SeededRNG.Enabled = true
		cfg.SeededRNG.Seed = int64(val)
	}
	if path := os.Getenv("COOKIE_CATALOG"); path != "" {
		cfg.CatalogPath = path
	}
	return cfg
}

func getEnvInt(key string) (int, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return num, true
}
