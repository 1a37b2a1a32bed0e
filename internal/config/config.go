// Package config carga la configuración del SDK/CLI desde YAML con
// overrides por variables de entorno (el env siempre gana sobre el archivo).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda "dev".
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	API struct {
		BaseURL string `yaml:"base_url"`
		Token   string `yaml:"token"`
		Timeout string `yaml:"timeout"` // duración, ej "30s"
	} `yaml:"api"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		TTL   string `yaml:"ttl"`  // TTL default del cache de respuestas
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	Log struct {
		Level string `yaml:"level"` // debug | info | warn | error
	} `yaml:"log"`

	Out string `yaml:"out"` // json | text
}

// Load lee el YAML (si path existe), aplica defaults y luego overrides de env.
// Un path vacío o inexistente no es error: se parte de la config en cero.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// sane defaults
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:8080"
	}
	if c.API.Timeout == "" {
		c.API.Timeout = "30s"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "2m"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Out == "" {
		c.Out = "text"
	}

	c.applyEnv()
	return &c, nil
}

// APITimeout retorna el timeout parseado (30s si el valor no parsea).
func (c *Config) APITimeout() time.Duration {
	if d, err := time.ParseDuration(c.API.Timeout); err == nil && d > 0 {
		return d
	}
	return 30 * time.Second
}

// CacheTTL retorna el TTL parseado del cache (2m si el valor no parsea).
func (c *Config) CacheTTL() time.Duration {
	if d, err := time.ParseDuration(c.Cache.TTL); err == nil && d > 0 {
		return d
	}
	return 2 * time.Minute
}

// applyEnv pisa la config con variables de entorno PATITAS_*.
func (c *Config) applyEnv() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = v
	}
	if v, ok := getEnvStr("PATITAS_API_URL"); ok {
		c.API.BaseURL = v
	}
	if v, ok := getEnvStr("PATITAS_API_TOKEN"); ok {
		c.API.Token = v
	}
	if v, ok := getEnvStr("PATITAS_API_TIMEOUT"); ok {
		c.API.Timeout = v
	}
	if v, ok := getEnvStr("PATITAS_CACHE_KIND"); ok {
		c.Cache.Kind = strings.ToLower(v)
	}
	if v, ok := getEnvStr("PATITAS_CACHE_TTL"); ok {
		c.Cache.TTL = v
	}
	if v, ok := getEnvStr("PATITAS_REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("PATITAS_REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("PATITAS_REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("PATITAS_REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := getEnvStr("PATITAS_OUT"); ok {
		c.Out = strings.ToLower(v)
	}
}

func getEnvStr(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	v, ok := getEnvStr(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
