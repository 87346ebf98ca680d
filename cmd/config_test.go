package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/career-navigator/internal/links"
	"github.com/spigell/career-navigator/internal/ranking"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func TestDecodeConfigDefaults(t *testing.T) {
	config, err := decodeConfig(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", config.Service.URL)
	assert.Equal(t, parserService, config.Resume.Parser)
	assert.Equal(t, links.SearchURL, config.Links.SearchURL)
	assert.Equal(t, ranking.Default, config.Strategy())
	assert.Equal(t, 200, config.Resume.Gemini.MaxLogLength)
}

func TestDecodeConfigOverrides(t *testing.T) {
	v := newTestViper()
	v.Set("service.url", "https://careers.example.com")
	v.Set("resume.parser", " Gemini ")
	v.Set("explore.strategy", "fast-track")
	v.Set("metrics-addr", "127.0.0.1:9090")

	config, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "https://careers.example.com", config.Service.URL)
	assert.Equal(t, parserGemini, config.Resume.Parser)
	assert.Equal(t, ranking.FastTrack, config.Strategy())
	assert.Equal(t, "127.0.0.1:9090", config.MetricsAddr)
}

func TestDecodeConfigAllIsDefault(t *testing.T) {
	v := newTestViper()
	v.Set("explore.strategy", "all")

	config, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, ranking.Default, config.Strategy())
}

func TestDecodeConfigValidation(t *testing.T) {
	tests := map[string]struct {
		key   string
		value any
	}{
		"service url":  {"service.url", "not a url"},
		"empty url":    {"service.url", ""},
		"parser":       {"resume.parser", "openai"},
		"strategy":     {"explore.strategy", "cheapest"},
		"search url":   {"links.search-url", "search"},
		"metrics addr": {"metrics-addr", "nope"},
		"log length":   {"resume.gemini.max-log-length", -1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			v := newTestViper()
			v.Set(tt.key, tt.value)

			_, err := decodeConfig(v)
			assert.Error(t, err)
		})
	}
}
