package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port"`
		Host         string        `yaml:"host"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"server"`

	Parser struct {
		FetchTimeout time.Duration `yaml:"fetch_timeout"`
		DNSTimeout   time.Duration `yaml:"dns_timeout"`
		MaxRedirects int           `yaml:"max_redirects"`
		MaxBodyBytes int64         `yaml:"max_body_bytes"`
		UserAgents   []string      `yaml:"user_agents"`
		// Job-board hosts the fetcher will hit. Comparison strips www.
		// and matches subdomains, so greenhouse.io covers boards.greenhouse.io.
		AllowedDomains []string `yaml:"allowed_domains"`
		// Extra hosts a redirect chain may legitimately land on.
		AllowedRedirectHosts []string `yaml:"allowed_redirect_hosts"`
	} `yaml:"parser"`

	Cache struct {
		Backend    string        `yaml:"backend"` // memory or redis
		MaxEntries int           `yaml:"max_entries"`
		TTL        time.Duration `yaml:"ttl"`
	} `yaml:"cache"`

	RateLimit struct {
		RequestsPerMinute int `yaml:"requests_per_minute"` // per domain; 0 disables
		Burst             int `yaml:"burst"`
	} `yaml:"rate_limit"`

	Redis struct {
		URL      string        `yaml:"url"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"redis"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`

		Adapters []AdapterConfig `yaml:"adapters"`
	} `yaml:"logging"`
}

// AdapterConfig describes one logging output adapter
type AdapterConfig struct {
	Name    string                 `yaml:"name"`
	Type    string                 `yaml:"type"`
	Enabled bool                   `yaml:"enabled"`
	Options map[string]interface{} `yaml:"options"`
}

// DefaultUserAgents is the rotation pool used when the config does not
// override it. Rotating evades trivial UA-based blocking.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// DefaultAllowedDomains is the static allow-list of known job boards.
var DefaultAllowedDomains = []string{
	"linkedin.com",
	"indeed.com",
	"glassdoor.com",
	"greenhouse.io",
	"lever.co",
	"myworkdayjobs.com",
}

// DefaultAllowedRedirectHosts covers the boards' own alternate hosts that
// legitimate redirect chains can end on.
var DefaultAllowedRedirectHosts = []string{
	"lnkd.in",
	"indeed.co.uk",
	"glassdoor.co.uk",
	"boards.greenhouse.io",
	"jobs.lever.co",
}

// expandEnvVars expands environment variables in a string using ${VAR} syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if val := os.Getenv(name); val != "" {
			return val
		}
		return match
	})
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Server.Port = 8080
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.ReadTimeout = 30 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second
	cfg.Server.IdleTimeout = 60 * time.Second

	cfg.Parser.FetchTimeout = 10 * time.Second
	cfg.Parser.DNSTimeout = 5 * time.Second
	cfg.Parser.MaxRedirects = 5
	cfg.Parser.MaxBodyBytes = 5 << 20
	cfg.Parser.UserAgents = append([]string(nil), DefaultUserAgents...)
	cfg.Parser.AllowedDomains = append([]string(nil), DefaultAllowedDomains...)
	cfg.Parser.AllowedRedirectHosts = append([]string(nil), DefaultAllowedRedirectHosts...)

	cfg.Cache.Backend = "memory"
	cfg.Cache.MaxEntries = 1000
	cfg.Cache.TTL = 24 * time.Hour

	cfg.RateLimit.RequestsPerMinute = 60
	cfg.RateLimit.Burst = 5

	cfg.Redis.URL = "redis://localhost:6379"
	cfg.Redis.Timeout = 5 * time.Second

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			content := expandEnvVars(string(data))
			if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
				return nil, err
			}
		}
	}

	cfg.loadFromEnv()

	return cfg, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if timeout := os.Getenv("PARSER_FETCH_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Parser.FetchTimeout = d
		}
	}

	if domains := os.Getenv("PARSER_ALLOWED_DOMAINS"); domains != "" {
		var list []string
		for _, d := range strings.Split(domains, ",") {
			if d = strings.TrimSpace(d); d != "" {
				list = append(list, d)
			}
		}
		if len(list) > 0 {
			c.Parser.AllowedDomains = list
		}
	}

	if backend := os.Getenv("CACHE_BACKEND"); backend != "" {
		c.Cache.Backend = backend
	}

	if entries := os.Getenv("CACHE_MAX_ENTRIES"); entries != "" {
		if n, err := strconv.Atoi(entries); err == nil {
			c.Cache.MaxEntries = n
		}
	}

	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Cache.TTL = d
		}
	}

	if rpm := os.Getenv("RATE_LIMIT_RPM"); rpm != "" {
		if n, err := strconv.Atoi(rpm); err == nil {
			c.RateLimit.RequestsPerMinute = n
		}
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if d, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = d
		}
	}
}
