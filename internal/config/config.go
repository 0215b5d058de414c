package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	SurveyID string `yaml:"survey_id"` // tags mirrored rows

	ResultsPath string `yaml:"results_path"`
	SavePartial bool   `yaml:"save_partial"`
	ResultsLock bool   `yaml:"results_lock"` // advisory flock around each append

	PagesDir   string `yaml:"pages_dir"` // empty: bundled sample survey
	PagesWatch bool   `yaml:"pages_watch"`
	MaxSkips   int    `yaml:"max_skips"` // 0: unbounded

	DBDriver string `yaml:"db_driver"` // empty disables the SQL mirror; sqlite|postgres
	DBDSN    string `yaml:"db_dsn"`

	CORSOrigins    []string `yaml:"cors_origins"`
	MetricsEnabled bool     `yaml:"metrics_enabled"`
}

func Defaults() Config {
	return Config{
		HTTPAddr:       ":8080",
		SurveyID:       "survey",
		ResultsPath:    "results.csv",
		MetricsEnabled: true,
	}
}

func FromEnv() Config {
	return applyEnv(Defaults())
}

// Load reads an optional YAML file over the defaults, then lets the
// environment override it.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return applyEnv(cfg), nil
}

func applyEnv(c Config) Config {
	c.HTTPAddr = envOr("HTTP_ADDR", c.HTTPAddr)
	c.SurveyID = envOr("SURVEY_ID", c.SurveyID)
	c.ResultsPath = envOr("RESULTS_PATH", c.ResultsPath)
	c.SavePartial = envBool("SAVE_PARTIAL", c.SavePartial)
	c.ResultsLock = envBool("RESULTS_LOCK", c.ResultsLock)
	c.PagesDir = envOr("PAGES_DIR", c.PagesDir)
	c.PagesWatch = envBool("PAGES_WATCH", c.PagesWatch)
	c.MaxSkips = envInt("MAX_SKIPS", c.MaxSkips)
	c.DBDriver = envOr("DB_DRIVER", c.DBDriver)
	c.DBDSN = envOr("DB_DSN", c.DBDSN)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = csv(v)
	}
	c.MetricsEnabled = envBool("METRICS_ENABLED", c.MetricsEnabled)
	return c
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return n
}
func csv(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
