package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fyptrack/fyptrack/internal/core"
)

type Config struct {
	DatabaseURL  string
	HTTPAddr     string
	LogLevel     string
	Env          string // dev|prod
	SentryDSN    string
	Location     *time.Location
	GradeBands   []core.GradeBand
	ReminderDays int // deadline horizon for the reminder job
	SeedDemo     bool
}

func Load() (*Config, error) {
	tz := getenv("TZ", "Africa/Lagos")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	bands, err := ParseGradeBands(os.Getenv("GRADE_BANDS"))
	if err != nil {
		return nil, fmt.Errorf("GRADE_BANDS: %w", err)
	}

	reminderDays, err := parseIntEnv("REMINDER_DAYS", 14)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:  mustEnv("DATABASE_URL"),
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		Env:          getenv("ENV", "dev"),
		SentryDSN:    os.Getenv("SENTRY_DSN"),
		Location:     loc,
		GradeBands:   bands,
		ReminderDays: reminderDays,
		SeedDemo:     getenv("SEED_DEMO", "") == "1",
	}
	return cfg, nil
}

// ParseGradeBands reads an ordered "minPercent:Label" list, e.g.
// "80:A,70:B,60:C,50:D,0:F". Empty input falls back to the defaults. The
// result is sorted highest minimum first so grading walks it top-down.
func ParseGradeBands(s string) ([]core.GradeBand, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.DefaultGradeBands, nil
	}
	parts := strings.Split(s, ",")
	bands := make([]core.GradeBand, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		min, label, ok := strings.Cut(p, ":")
		if !ok || strings.TrimSpace(label) == "" {
			return nil, fmt.Errorf("bad band %q, want minPercent:Label", p)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(min), 64)
		if err != nil {
			return nil, fmt.Errorf("bad band %q: %w", p, err)
		}
		if v < 0 || v > 100 {
			return nil, fmt.Errorf("band %q: minimum %v outside 0..100", p, v)
		}
		bands = append(bands, core.GradeBand{MinPercent: v, Label: strings.TrimSpace(label)})
	}
	if len(bands) == 0 {
		return nil, fmt.Errorf("no bands in %q", s)
	}
	sort.SliceStable(bands, func(i, j int) bool { return bands[i].MinPercent > bands[j].MinPercent })
	return bands, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseIntEnv(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
