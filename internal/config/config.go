package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Timer         TimerConfig         `toml:"timer"`
	Sync          SyncConfig          `toml:"sync"`
	Notifications NotificationsConfig `toml:"notifications"`
	Journal       JournalConfig       `toml:"journal"`
	Log           LogConfig           `toml:"log"`
	UI            UIConfig            `toml:"ui"`
}

type TimerConfig struct {
	WorkMinutes       int `toml:"work_minutes"`
	ShortBreakMinutes int `toml:"short_break_minutes"`
	LongBreakMinutes  int `toml:"long_break_minutes"`
	LongBreakEvery    int `toml:"long_break_every"`
}

type SyncConfig struct {
	DefaultFile string `toml:"default_file"`
}

type NotificationsConfig struct {
	Desktop bool `toml:"desktop"`
	Beep    bool `toml:"beep"`
}

type JournalConfig struct {
	Path string `toml:"path"` // "" disables the journal
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type UIConfig struct {
	PageSize        int  `toml:"page_size"`
	ShowTasksPanel  bool `toml:"show_tasks_panel"`
	AlarmBufferSize int  `toml:"alarm_buffer_size"`
}

func Default() Config {
	return Config{
		Timer: TimerConfig{
			WorkMinutes:       25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
			LongBreakEvery:    4,
		},
		Sync: SyncConfig{
			DefaultFile: "~/.cache/pomo/tasks.md",
		},
		Notifications: NotificationsConfig{
			Desktop: true,
			Beep:    true,
		},
		Journal: JournalConfig{
			Path: "~/.local/share/pomo/journal.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			PageSize:        5,
			ShowTasksPanel:  true,
			AlarmBufferSize: 16,
		},
	}
}

// DefaultPath is <user config dir>/pomo/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "pomo", "config.toml"), nil
}

// Load decodes path over defaults. A missing or empty file yields defaults.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Timer.WorkMinutes <= 0 {
		return fmt.Errorf("timer.work_minutes must be > 0, got %d", c.Timer.WorkMinutes)
	}
	if c.Timer.ShortBreakMinutes <= 0 {
		return fmt.Errorf("timer.short_break_minutes must be > 0, got %d", c.Timer.ShortBreakMinutes)
	}
	if c.Timer.LongBreakMinutes <= 0 {
		return fmt.Errorf("timer.long_break_minutes must be > 0, got %d", c.Timer.LongBreakMinutes)
	}
	if c.Timer.LongBreakEvery <= 0 {
		return fmt.Errorf("timer.long_break_every must be > 0, got %d", c.Timer.LongBreakEvery)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("ui.page_size must be > 0, got %d", c.UI.PageSize)
	}
	if c.UI.AlarmBufferSize < 0 {
		return fmt.Errorf("ui.alarm_buffer_size must be >= 0, got %d", c.UI.AlarmBufferSize)
	}
	return nil
}

func (t TimerConfig) Work() time.Duration       { return time.Duration(t.WorkMinutes) * time.Minute }
func (t TimerConfig) ShortBreak() time.Duration { return time.Duration(t.ShortBreakMinutes) * time.Minute }
func (t TimerConfig) LongBreak() time.Duration  { return time.Duration(t.LongBreakMinutes) * time.Minute }

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// Save writes cfg as TOML through a temp file and rename.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	payload, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp, path)
}
