package cmd

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/spigell/career-navigator/internal/links"
	"github.com/spigell/career-navigator/internal/ranking"
)

const (
	parserService = "service"
	parserGemini  = "gemini"
)

type Config struct {
	Service     ServiceConfig `mapstructure:"service"`
	Resume      ResumeConfig  `mapstructure:"resume"`
	Explore     ExploreConfig `mapstructure:"explore"`
	Links       LinksConfig   `mapstructure:"links"`
	MetricsAddr string        `mapstructure:"metrics-addr" validate:"omitempty,hostname_port"`
}

type ServiceConfig struct {
	URL       string `mapstructure:"url" validate:"required,url"`
	TokenFile string `mapstructure:"token-file"`
	UserAgent string `mapstructure:"user-agent"`
}

type ResumeConfig struct {
	Parser string       `mapstructure:"parser" validate:"oneof=service gemini"`
	Gemini GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

type ExploreConfig struct {
	Strategy string `mapstructure:"strategy" validate:"omitempty,oneof=default high-match fast-track high-salary all"`
}

type LinksConfig struct {
	SearchURL string `mapstructure:"search-url" validate:"omitempty,url"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.url", "http://localhost:8000")
	v.SetDefault("service.user-agent", app)
	v.SetDefault("resume.parser", parserService)
	v.SetDefault("resume.gemini.model", "gemini-2.0-flash")
	v.SetDefault("resume.gemini.max-log-length", 200)
	v.SetDefault("explore.strategy", string(ranking.Default))
	v.SetDefault("links.search-url", links.SearchURL)
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	config.Resume.Parser = strings.ToLower(strings.TrimSpace(config.Resume.Parser))
	config.Explore.Strategy = strings.ToLower(strings.TrimSpace(config.Explore.Strategy))

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Strategy returns the configured initial ranking strategy.
func (c *Config) Strategy() ranking.Strategy {
	s, err := ranking.ParseStrategy(c.Explore.Strategy)
	if err != nil {
		return ranking.Default
	}
	return s
}
