// Package config loads triviarpg settings.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// TRIVIARPG_* environment variables. The result is validated before use;
// the balance section is checked against an embedded CUE schema.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/roach88/triviarpg/internal/generator"
)

//go:embed balance.cue
var balanceSchema []byte

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TRIVIARPG_"

// Config is the full runtime configuration.
type Config struct {
	Database      string        `yaml:"database" env:"DB"`
	SaveKey       string        `yaml:"save_key" env:"SAVE_KEY"`
	AutosaveDelay time.Duration `yaml:"autosave_delay" env:"AUTOSAVE_DELAY"`
	Seed          int64         `yaml:"seed" env:"SEED"`
	QuestionBank  string        `yaml:"question_bank" env:"QUESTIONS"`
	Balance       Balance       `yaml:"balance"`
}

// Balance holds the gameplay constants that are open to tuning.
type Balance struct {
	StartingCoins        int     `yaml:"starting_coins" json:"starting_coins"`
	PrestigeLevel        int     `yaml:"prestige_level" json:"prestige_level"`
	MaxOfflineHours      int     `yaml:"max_offline_hours" json:"max_offline_hours"`
	SkillRollCost        int     `yaml:"skill_roll_cost" json:"skill_roll_cost"`
	RelicCap             int     `yaml:"relic_cap" json:"relic_cap"`
	MarketSize           int     `yaml:"market_size" json:"market_size"`
	MarketRefreshMinutes int     `yaml:"market_refresh_minutes" json:"market_refresh_minutes"`
	CriticalChance       float64 `yaml:"critical_chance" json:"critical_chance"`
	EnemyScaling         string  `yaml:"enemy_scaling" json:"enemy_scaling"`
	Revival              bool    `yaml:"revival" json:"revival"`
	RarityWeights        []int   `yaml:"rarity_weights" json:"rarity_weights"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Database:      "triviarpg.db",
		SaveKey:       "gameState",
		AutosaveDelay: time.Second,
		Balance:       DefaultBalance(),
	}
}

// DefaultBalance returns the stock game balance.
func DefaultBalance() Balance {
	w := generator.DefaultWeights
	return Balance{
		StartingCoins:        100,
		PrestigeLevel:        50,
		MaxOfflineHours:      24,
		SkillRollCost:        100,
		RelicCap:             5,
		MarketSize:           3,
		MarketRefreshMinutes: 5,
		CriticalChance:       0,
		EnemyScaling:         string(generator.ScalingLinear),
		Revival:              false,
		RarityWeights:        w[:],
	}
}

// Weights returns the rarity weights in generator form. Validate first.
func (b Balance) Weights() generator.Weights {
	var w generator.Weights
	copy(w[:], b.RarityWeights)
	return w
}

// MarketInterval is the time between market refreshes.
func (b Balance) MarketInterval() time.Duration {
	return time.Duration(b.MarketRefreshMinutes) * time.Minute
}

// Load reads path (skipped when empty) over the defaults, applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	return load(path, nil)
}

// load is Load with an explicit environment; nil means the process environment.
func load(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem with c joined into one error.
func (c Config) Validate() error {
	var errs []error
	if c.Database == "" {
		errs = append(errs, errors.New("database: must not be empty"))
	}
	if c.SaveKey == "" {
		errs = append(errs, errors.New("save_key: must not be empty"))
	}
	if c.AutosaveDelay < 0 {
		errs = append(errs, fmt.Errorf("autosave_delay: must not be negative, got %s", c.AutosaveDelay))
	}
	if err := c.Balance.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate checks b against the CUE schema, then that the rarity weights
// sum to 100.
func (b Balance) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(balanceSchema, cue.Filename("balance.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile balance schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Balance"))

	v := ctx.Encode(b)
	if err := v.Err(); err != nil {
		return fmt.Errorf("encode balance: %w", err)
	}
	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("balance: %w", err)
	}

	sum := 0
	for _, w := range b.RarityWeights {
		sum += w
	}
	if sum != 100 {
		return fmt.Errorf("balance: rarity_weights must sum to 100, got %d", sum)
	}
	return nil
}
