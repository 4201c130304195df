package core

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath   = "svgurl.config.yml"
	DefaultSVGDir       = "./svgs"
	DefaultBaseURL      = "https://svgtourl.nw.r.appspot.com"
	DefaultRoutePrefix  = "/svg"
	DefaultPort         = 3000
	DefaultCacheControl = "private, max-age=10000000"
)

type Config struct {
	SVGDir       string   `yaml:"svgDir"`
	BaseURL      string   `yaml:"baseURL"`
	RoutePrefix  string   `yaml:"routePrefix"`
	Port         int      `yaml:"port"`
	CacheControl string   `yaml:"cacheControl"`
	CORSOrigins  []string `yaml:"corsOrigins"`
	Minify       bool     `yaml:"minify"`
	ReplaceStale bool     `yaml:"replaceStale"`
	DebugLogs    bool     `yaml:"debugLogs"`
}

func DefaultConfig() Config {
	return Config{
		SVGDir:       DefaultSVGDir,
		BaseURL:      DefaultBaseURL,
		RoutePrefix:  DefaultRoutePrefix,
		Port:         DefaultPort,
		CacheControl: DefaultCacheControl,
		CORSOrigins:  []string{"*"},
		ReplaceStale: true,
	}
}

// LoadConfig reads the YAML config at path. A missing file yields the
// defaults; PORT, SVG_DIR and BASE_URL override whatever the file says.
var LoadConfig = func(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)
	cfg.normalize()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("SVG_DIR"); v != "" {
		cfg.SVGDir = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
}

func (c *Config) normalize() {
	if c.SVGDir == "" {
		c.SVGDir = DefaultSVGDir
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	// "/svg", "svg" and "/svg/" all mean the same route.
	c.RoutePrefix = strings.Trim(c.RoutePrefix, "/")
	if c.RoutePrefix == "" {
		c.RoutePrefix = strings.Trim(DefaultRoutePrefix, "/")
	}
	c.RoutePrefix = "/" + c.RoutePrefix

	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	if c.CacheControl == "" {
		c.CacheControl = DefaultCacheControl
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
}
