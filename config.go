package main

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

const (
	MethodMinimax   = "minimax"
	MethodAlphaBeta = "alphabeta"
)

const (
	ScoreFnChaser   = "chaser"
	ScoreFnMobility = "mobility"
	ScoreFnBlend    = "blend"
)

type Config struct {
	ServerPort        string  `json:"server_port" mapstructure:"server_port"`
	BoardWidth        int     `json:"board_width" mapstructure:"board_width"`
	BoardHeight       int     `json:"board_height" mapstructure:"board_height"`
	TurnTimeMs        int     `json:"turn_time_ms" mapstructure:"turn_time_ms"`
	AiSearchDepth     int     `json:"ai_search_depth" mapstructure:"ai_search_depth"`
	AiScoreFn         string  `json:"ai_score_fn" mapstructure:"ai_score_fn"`
	AiIterative       bool    `json:"ai_iterative" mapstructure:"ai_iterative"`
	AiMethod          string  `json:"ai_method" mapstructure:"ai_method"`
	AiTimeoutMarginMs float64 `json:"ai_timeout_margin_ms" mapstructure:"ai_timeout_margin_ms"`
	AiChaserWeight    float64 `json:"ai_chaser_weight" mapstructure:"ai_chaser_weight"`
	AiLogSearchStats  bool    `json:"ai_log_search_stats" mapstructure:"ai_log_search_stats"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		ServerPort:  "8080",
		BoardWidth:  7,
		BoardHeight: 7,

		// Per-turn wall-clock budget enforced by the match driver.
		TurnTimeMs: 150,

		// Used only when ai_iterative is false.
		AiSearchDepth: 3,

		AiScoreFn:   ScoreFnBlend,
		AiIterative: true,
		AiMethod:    MethodMinimax,

		// Search aborts once the time-left query drops to this margin. Worst
		// case overrun is one node of work, which must stay well below it.
		AiTimeoutMarginMs: 10.0,

		AiChaserWeight:   2.0,
		AiLogSearchStats: false,
	}
}

// LoadConfig reads a config file with viper, overlaying it on the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.AiMethod {
	case MethodMinimax, MethodAlphaBeta:
	default:
		return fmt.Errorf("unknown ai_method %q", c.AiMethod)
	}
	if _, err := scoreFnByName(c.AiScoreFn); err != nil {
		return err
	}
	if c.BoardWidth <= 0 || c.BoardHeight <= 0 {
		return fmt.Errorf("board dimensions must be positive, got %dx%d", c.BoardWidth, c.BoardHeight)
	}
	if c.AiSearchDepth <= 0 {
		return fmt.Errorf("ai_search_depth must be positive, got %d", c.AiSearchDepth)
	}
	return nil
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
