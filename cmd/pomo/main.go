package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/pomo/internal/config"
	"github.com/sandeepkv93/pomo/internal/logging"
	"github.com/sandeepkv93/pomo/internal/notify"
	"github.com/sandeepkv93/pomo/internal/scheduler"
	"github.com/sandeepkv93/pomo/internal/storage"
	"github.com/sandeepkv93/pomo/internal/tasks"
	"github.com/sandeepkv93/pomo/internal/update"
)

var Version = "dev"

type program interface {
	Run() (tea.Model, error)
}

var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pomo:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	logFile    string
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "pomo [checklist-file]",
		Short:         "Pomodoro timer with a task list synced to a markdown checklist",
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return run(opts, path)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config TOML")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "path to the log file")
	rootCmd.AddCommand(pathsCmd(opts), initCmd(opts))
	return rootCmd
}

func pathsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the resolved config, log, journal and checklist paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logPath, err := resolveLogPath(opts, cfg)
			if err != nil {
				return err
			}
			journal, err := config.ExpandHome(cfg.Journal.Path)
			if err != nil {
				return err
			}
			checklist, err := config.ExpandHome(cfg.Sync.DefaultFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "config: %s\n", configPath)
			_, _ = fmt.Fprintf(out, "log: %s\n", logPath)
			_, _ = fmt.Fprintf(out, "journal: %s\n", valueOrNone(journal))
			_, _ = fmt.Fprintf(out, "default_checklist: %s\n", checklist)
			return nil
		},
	}
}

func initCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(opts)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config %q already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

func run(opts *rootOptions, checklistPath string) error {
	configPath, cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logPath, err := resolveLogPath(opts, cfg)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(logging.Options{Level: cfg.Log.Level, Path: logPath})
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	defer func() { _ = closeLog() }()
	logger.Info("configuration loaded", "config_path", configPath, "log_level", cfg.Log.Level)

	manager := tasks.NewManager()
	if checklistPath != "" {
		manager, err = tasks.Load(checklistPath)
		if err != nil {
			logger.Error("checklist load failed", "path", checklistPath, "err", err)
			return err
		}
		logger.Info("checklist loaded", "path", checklistPath)
	}

	var journal storage.Journal
	journalPath, err := config.ExpandHome(cfg.Journal.Path)
	if err != nil {
		return err
	}
	if journalPath != "" {
		repo, err := storage.OpenSQLite(journalPath)
		if err != nil {
			logger.Error("journal open failed", "path", journalPath, "err", err)
			return fmt.Errorf("open journal: %w", err)
		}
		defer func() {
			if closeErr := repo.Close(); closeErr != nil {
				logger.Warn("journal close failed", "err", closeErr)
			}
		}()
		journal = repo
		logger.Info("journal ready", "path", journalPath)
	}

	engine := scheduler.NewEngine(cfg.UI.AlarmBufferSize)
	engine.Start()
	defer func() {
		engine.Stop()
		if dropped := engine.Dropped(); dropped > 0 {
			logger.Warn("alarm engine dropped alarms", "dropped", dropped)
		}
	}()

	m := update.NewModel(update.Options{
		Config:    cfg,
		Manager:   manager,
		Scheduler: engine,
		Journal:   journal,
		Notifier:  notify.NewDesktop(cfg.Notifications.Desktop, cfg.Notifications.Beep),
		Logger:    logger,
	})
	logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("tui program finished")
	return nil
}

func resolveConfigPath(opts *rootOptions) (string, error) {
	if path := strings.TrimSpace(opts.configPath); path != "" {
		return path, nil
	}
	if path := strings.TrimSpace(os.Getenv("POMO_CONFIG")); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

func loadConfig(opts *rootOptions) (string, config.Config, error) {
	configPath, err := resolveConfigPath(opts)
	if err != nil {
		return "", config.Config{}, err
	}
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return "", config.Config{}, fmt.Errorf("load config %q: %w", configPath, err)
	}
	cfg = config.FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return "", config.Config{}, err
	}
	return configPath, cfg, nil
}

func resolveLogPath(opts *rootOptions, cfg config.Config) (string, error) {
	path := strings.TrimSpace(opts.logFile)
	if path == "" {
		path = cfg.Log.File
	}
	if path == "" {
		return logging.DefaultPath()
	}
	return config.ExpandHome(path)
}

func valueOrNone(v string) string {
	if v == "" {
		return "(disabled)"
	}
	return v
}
