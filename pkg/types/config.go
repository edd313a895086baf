// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the session client that
// every provider and generation call goes through.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with provider requests
	// (e.g. "blog-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// InsecureSkipVerify disables TLS certificate and hostname checks.
	// Some quotation endpoints have served broken certificate chains; this
	// exists only to interoperate with them and is off by default.
	InsecureSkipVerify bool `json:"insecure_skip_verify" yaml:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`
}

// ProviderConfig holds credentials for the research providers.
type ProviderConfig struct {
	// NewsDataAPIKey authenticates against newsdata.io. When empty the news
	// provider returns no results without making a request.
	NewsDataAPIKey string `json:"newsdata_api_key,omitempty" yaml:"newsdata_api_key,omitempty" mapstructure:"newsdata_api_key"`
}

// GenerationProvider names a generative-text backend.
type GenerationProvider string

const (
	ProviderGemini    GenerationProvider = "gemini"
	ProviderOpenAI    GenerationProvider = "openai"
	ProviderAnthropic GenerationProvider = "anthropic"
)

// GenerationConfig holds settings for the generation backend.
type GenerationConfig struct {
	// Provider selects the backend: gemini, openai, or anthropic.
	Provider GenerationProvider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the model identifier (e.g. "gemini-1.5-flash").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key. Empty disables real generation and
	// every prompt returns placeholder text instead.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the API endpoint for OpenAI-compatible gateways.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// MaxAttempts is the number of attempts per prompt (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" mapstructure:"max_attempts"`

	// SlugFromTitle starts each article without a topic slug so the SEO
	// finisher derives one from the generated title.
	SlugFromTitle bool `json:"slug_from_title" yaml:"slug_from_title" mapstructure:"slug_from_title"`
}

// CacheConfig controls the research cache.
type CacheConfig struct {
	// Enabled turns on caching of provider results per (provider, topic).
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// TTL is how long a cached provider result stays valid (default 1h).
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// StoreConfig locates the SQLite database holding the research cache and
// the article archive.
type StoreConfig struct {
	// Path is the database file (e.g. "blog_output/blog-engine.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// OutputConfig holds settings for file export.
type OutputConfig struct {
	// Dir is the directory exported articles are written to.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// HTML also renders the article body to an .html file.
	HTML bool `json:"html" yaml:"html" mapstructure:"html"`

	// YAML also writes the metadata as a .yaml file.
	YAML bool `json:"yaml" yaml:"yaml" mapstructure:"yaml"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// AllowedOrigins lists the origins granted CORS access.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// Config groups every setting the blog engine reads at startup. It is
// built once and passed to constructors; nothing mutates it afterwards.
type Config struct {
	HTTP       HTTPConfig       `json:"http" yaml:"http" mapstructure:"http"`
	Providers  ProviderConfig   `json:"providers" yaml:"providers" mapstructure:"providers"`
	Generation GenerationConfig `json:"generation" yaml:"generation" mapstructure:"generation"`
	Cache      CacheConfig      `json:"cache" yaml:"cache" mapstructure:"cache"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
	Output     OutputConfig     `json:"output" yaml:"output" mapstructure:"output"`
	Server     ServerConfig     `json:"server" yaml:"server" mapstructure:"server"`
}

// Defaults for Config fields left unset.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "blog-engine/0.1"
	DefaultModel       = "gemini-1.5-flash"
	DefaultMaxAttempts = 3
	DefaultCacheTTL    = time.Hour
	DefaultOutputDir   = "blog_output"
	DefaultStorePath   = "blog_output/blog-engine.db"
	DefaultServerAddr  = ":8080"
	DefaultCORSOrigin  = "http://localhost:3000"
)

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = DefaultTimeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = DefaultUserAgent
	}
	if c.Generation.Provider == "" {
		c.Generation.Provider = ProviderGemini
	}
	if c.Generation.Model == "" && c.Generation.Provider == ProviderGemini {
		c.Generation.Model = DefaultModel
	}
	if c.Generation.MaxAttempts <= 0 {
		c.Generation.MaxAttempts = DefaultMaxAttempts
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{DefaultCORSOrigin}
	}
}
