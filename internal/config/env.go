package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv applies POMO_* overrides on top of base. Malformed or
// non-positive numbers are ignored.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvInt("POMO_WORK_MINUTES"); ok && v > 0 {
		cfg.Timer.WorkMinutes = v
	}
	if v, ok := getEnvInt("POMO_SHORT_BREAK_MINUTES"); ok && v > 0 {
		cfg.Timer.ShortBreakMinutes = v
	}
	if v, ok := getEnvInt("POMO_LONG_BREAK_MINUTES"); ok && v > 0 {
		cfg.Timer.LongBreakMinutes = v
	}
	if v, ok := getEnvInt("POMO_LONG_BREAK_EVERY"); ok && v > 0 {
		cfg.Timer.LongBreakEvery = v
	}
	if v, ok := getEnvBool("POMO_DESKTOP_NOTIFICATIONS"); ok {
		cfg.Notifications.Desktop = v
	}
	if v, ok := getEnvBool("POMO_BEEP"); ok {
		cfg.Notifications.Beep = v
	}
	if v, ok := os.LookupEnv("POMO_JOURNAL_PATH"); ok {
		cfg.Journal.Path = strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(os.Getenv("POMO_TASKS_FILE")); v != "" {
		cfg.Sync.DefaultFile = v
	}
	if v := strings.TrimSpace(os.Getenv("POMO_LOG_LEVEL")); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("POMO_LOG_FILE")); v != "" {
		cfg.Log.File = v
	}
	if v, ok := getEnvInt("POMO_PAGE_SIZE"); ok && v > 0 {
		cfg.UI.PageSize = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
