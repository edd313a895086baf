// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/pdiddy/blog-engine/pkg/types"
)

const envPrefix = "BLOG_ENGINE"

// setDefaults registers every config key with its default and wires the
// environment: BLOG_ENGINE_<SECTION>_<KEY> for all keys, plus the bare
// GEMINI_API_KEY and NEWSDATA_API_KEY variables.
func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", types.DefaultTimeout)
	v.SetDefault("http.user_agent", types.DefaultUserAgent)
	v.SetDefault("http.insecure_skip_verify", false)

	v.SetDefault("providers.newsdata_api_key", "")

	v.SetDefault("generation.provider", string(types.ProviderGemini))
	v.SetDefault("generation.model", "")
	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.base_url", "")
	v.SetDefault("generation.max_attempts", types.DefaultMaxAttempts)
	v.SetDefault("generation.slug_from_title", false)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", types.DefaultCacheTTL)

	v.SetDefault("store.path", types.DefaultStorePath)

	v.SetDefault("output.dir", types.DefaultOutputDir)
	v.SetDefault("output.html", false)
	v.SetDefault("output.yaml", false)

	v.SetDefault("server.addr", types.DefaultServerAddr)
	v.SetDefault("server.allowed_origins", []string{types.DefaultCORSOrigin})

	v.SetDefault("log.level", zerolog.LevelInfoValue)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("generation.api_key", envPrefix+"_GENERATION_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("providers.newsdata_api_key", envPrefix+"_PROVIDERS_NEWSDATA_API_KEY", "NEWSDATA_API_KEY")
}

// loadConfig decodes v into a Config with defaults applied and returns the
// configured log level.
func loadConfig(v *viper.Viper) (types.Config, zerolog.Level, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return c, zerolog.InfoLevel, fmt.Errorf("decoding config: %w", err)
	}
	c.ApplyDefaults()

	switch c.Generation.Provider {
	case types.ProviderGemini, types.ProviderOpenAI, types.ProviderAnthropic:
	default:
		return c, zerolog.InfoLevel, fmt.Errorf("unknown generation provider %q: use gemini, openai, or anthropic", c.Generation.Provider)
	}

	levelName := v.GetString("log.level")
	if levelName == "" {
		levelName = zerolog.LevelInfoValue
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return c, zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	return c, level, nil
}

// newLogger returns a console logger on stderr at level.
func newLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
