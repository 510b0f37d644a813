package config

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnv overrides fields from BINGOX_* environment variables. Unset or
// malformed values are ignored.
func (c *Config) ApplyEnv() {
	if v, ok := getEnvInt("BINGOX_SEED"); ok {
		c.Seed = int64(v)
	}
	if v, ok := getEnvInt("BINGOX_MAX_TURNS"); ok && v >= 0 {
		c.MaxTurns = v
	}
	if v := os.Getenv("BINGOX_DECK"); v != "" {
		c.Deck = v
	}
	if v := os.Getenv("BINGOX_DECKS_FILE"); v != "" {
		c.DecksFile = v
	}
	if v := os.Getenv("BINGOX_RELICS"); v != "" {
		c.Relics = nil
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				c.Relics = append(c.Relics, id)
			}
		}
	}
}

func getEnvInt(key string) (int, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return i, true
}
