package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/bingox/internal/game"
	"github.com/peterkuimelis/bingox/internal/log"
)

type Config struct {
	Seed          int64         `yaml:"seed" json:"seed"`
	MaxTurns      int           `yaml:"max_turns" json:"max_turns"`
	Deck          string        `yaml:"deck" json:"deck"`
	DecksFile     string        `yaml:"decks_file" json:"decks_file"`
	Relics        []string      `yaml:"relics" json:"relics"`
	IntentWeights IntentWeights `yaml:"intent_weights" json:"intent_weights"`
	Player        UnitConfig    `yaml:"player" json:"player"`
	Enemies       []UnitConfig  `yaml:"enemies" json:"enemies"`
	Log           LogConfig     `yaml:"log" json:"log"`
}

type IntentWeights struct {
	Attack int `yaml:"attack" json:"attack"`
	Defend int `yaml:"defend" json:"defend"`
	Buff   int `yaml:"buff" json:"buff"`
}

type UnitConfig struct {
	Name        string `yaml:"name" json:"name"`
	MaxHP       int    `yaml:"max_hp" json:"max_hp"`
	BaseAttack  int    `yaml:"base_attack" json:"base_attack"`
	BaseDefense int    `yaml:"base_defense" json:"base_defense"`
	BaseShield  int    `yaml:"base_shield" json:"base_shield"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Default returns the stock battle: the golem against three minions on the
// 32-card basic pool.
func Default() *Config {
	c := &Config{
		MaxTurns:  200,
		DecksFile: "decks.yaml",
		IntentWeights: IntentWeights{
			Attack: game.DefaultIntentWeights.Attack,
			Defend: game.DefaultIntentWeights.Defend,
			Buff:   game.DefaultIntentWeights.Buff,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
	r := game.DefaultRoster()
	c.Player = unitConfig(r.Player)
	for _, e := range r.Enemies {
		c.Enemies = append(c.Enemies, unitConfig(e))
	}
	return c
}

func unitConfig(s game.UnitSpec) UnitConfig {
	return UnitConfig{Name: s.Name, MaxHP: s.MaxHP, BaseAttack: s.BaseAttack, BaseDefense: s.BaseDefense, BaseShield: s.BaseShield}
}

func (u UnitConfig) spec() game.UnitSpec {
	return game.UnitSpec{Name: u.Name, MaxHP: u.MaxHP, BaseAttack: u.BaseAttack, BaseDefense: u.BaseDefense, BaseShield: u.BaseShield}
}

// ApplyDefaults fills fields a partial file left empty.
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.DecksFile == "" {
		c.DecksFile = d.DecksFile
	}
	if c.IntentWeights.Attack+c.IntentWeights.Defend+c.IntentWeights.Buff <= 0 {
		c.IntentWeights = d.IntentWeights
	}
	if c.Player.MaxHP == 0 {
		c.Player = d.Player
	}
	if len(c.Enemies) == 0 {
		c.Enemies = d.Enemies
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// Load reads a YAML config on top of the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Resolve is what the commands use: the file at path (or the defaults when
// path is empty) with BINGOX_* overrides applied, validated.
func Resolve(path string) (*Config, error) {
	c := Default()
	if path != "" {
		var err error
		if c, err = Load(path); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	c.ApplyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Parse(data []byte) (*Config, error) {
	c := Default()
	c.Enemies = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects configurations no battle can start from.
func (c *Config) Validate() error {
	if c.Player.MaxHP <= 0 {
		return fmt.Errorf("player max_hp must be positive")
	}
	if len(c.Enemies) == 0 {
		return game.ErrNoEnemies
	}
	for i, e := range c.Enemies {
		if e.MaxHP <= 0 {
			return fmt.Errorf("enemy %d: max_hp must be positive", i+1)
		}
	}
	if c.MaxTurns < 0 {
		return fmt.Errorf("max_turns must not be negative")
	}
	if _, err := game.NewRelicSet(c.Relics); err != nil {
		return err
	}
	return nil
}

func (c *Config) Roster() game.Roster {
	r := game.Roster{Player: c.Player.spec()}
	for _, e := range c.Enemies {
		r.Enemies = append(r.Enemies, e.spec())
	}
	return r
}

// Composition loads the configured deck. No deck means the default pool,
// reported as nil.
func (c *Config) Composition() ([]*game.CardDef, error) {
	if c.Deck == "" {
		return nil, nil
	}
	defs, err := game.DeckByName(c.DecksFile, c.Deck)
	if err != nil {
		return nil, fmt.Errorf("load deck %q from %s: %w", c.Deck, c.DecksFile, err)
	}
	return defs, nil
}

func (c *Config) BattleConfig(comp []*game.CardDef, logger log.EventLogger, diag logrus.FieldLogger) game.BattleConfig {
	return game.BattleConfig{
		Composition: comp,
		Seed:        c.Seed,
		Logger:      logger,
		Diag:        diag,
		IntentWeights: game.IntentWeights{
			Attack: c.IntentWeights.Attack,
			Defend: c.IntentWeights.Defend,
			Buff:   c.IntentWeights.Buff,
		},
		Relics:   append([]string(nil), c.Relics...),
		MaxTurns: c.MaxTurns,
	}
}

// NewBattle builds and starts a battle from the configuration.
func (c *Config) NewBattle(logger log.EventLogger, diag logrus.FieldLogger) (*game.Battle, error) {
	comp, err := c.Composition()
	if err != nil {
		return nil, err
	}
	b, err := game.NewBattle(c.BattleConfig(comp, logger, diag))
	if err != nil {
		return nil, err
	}
	if err := b.StartBattle(c.Roster()); err != nil {
		return nil, err
	}
	return b, nil
}

// Diagnostics builds the diagnostics logger the configuration asks for.
func (c *Config) Diagnostics() *logrus.Logger {
	return log.NewDiagnostics(nil, c.Log.Level, c.Log.Format)
}
