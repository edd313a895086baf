// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files. Each
// file is one secret: the filename is the key name and the trimmed file
// contents are the value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// Key files understood by Apply.
const (
	GeminiAPIKey    = "gemini-api-key"
	OpenAIAPIKey    = "openai-api-key"
	AnthropicAPIKey = "anthropic-api-key"
	NewsDataAPIKey  = "newsdata-api-key"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string, log zerolog.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply fills credentials that cfg leaves empty from the loaded secrets.
// Explicit configuration always wins. The generation key is chosen by the
// configured provider.
func Apply(cfg *types.Config, s map[string]string) {
	if cfg.Providers.NewsDataAPIKey == "" {
		cfg.Providers.NewsDataAPIKey = s[NewsDataAPIKey]
	}
	if cfg.Generation.APIKey != "" {
		return
	}
	switch cfg.Generation.Provider {
	case types.ProviderOpenAI:
		cfg.Generation.APIKey = s[OpenAIAPIKey]
	case types.ProviderAnthropic:
		cfg.Generation.APIKey = s[AnthropicAPIKey]
	default:
		cfg.Generation.APIKey = s[GeminiAPIKey]
	}
}
