package update

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	charmLog "github.com/charmbracelet/log"

	"github.com/sandeepkv93/pomo/internal/config"
	"github.com/sandeepkv93/pomo/internal/focus"
	"github.com/sandeepkv93/pomo/internal/logging"
	"github.com/sandeepkv93/pomo/internal/model"
	"github.com/sandeepkv93/pomo/internal/notify"
	"github.com/sandeepkv93/pomo/internal/scheduler"
	"github.com/sandeepkv93/pomo/internal/storage"
	"github.com/sandeepkv93/pomo/internal/tasks"
	"github.com/sandeepkv93/pomo/internal/timer"
)

type Panel int

const (
	PanelTimer Panel = iota
	PanelTasks
)

func (p Panel) String() string {
	switch p {
	case PanelTasks:
		return "Tasks"
	default:
		return "Timer"
	}
}

type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayTaskInput
	OverlaySync
	OverlayError
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// SyncReview holds the items under review in the sync overlay.
type SyncReview struct {
	Items  []model.SyncItem
	Cursor int
}

type Model struct {
	ActivePanel   Panel
	Overlay       Overlay
	ShowTasks     bool
	Focus         focus.Focus
	Sync          SyncReview
	Palette       CommandPaletteState
	Status        StatusBar
	ErrorText     string
	LastError     error
	Quitting      bool
	TodayCount    int
	TodayKnown    bool
	Width         int
	Height        int
	inputSection  model.Section
	cfg           config.Config
	manager       *tasks.Manager
	timer         *timer.Timer
	scheduler     *scheduler.Engine
	journal       storage.Journal
	notifier      notify.Notifier
	logger        *charmLog.Logger
	now           func() time.Time
	copyToClip    func(string) error
	taskInput     textinput.Model
	commandInput  textinput.Model
	timerProgress progress.Model
	runSpinner    spinner.Model
	helpModel     help.Model
}

// Options wires the collaborators of a Model. Zero fields get working
// defaults so tests only set what they exercise.
type Options struct {
	Config    config.Config
	Manager   *tasks.Manager
	Scheduler *scheduler.Engine
	Journal   storage.Journal
	Notifier  notify.Notifier
	Logger    *charmLog.Logger
	Now       func() time.Time
	Clipboard func(string) error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type TimerTickMsg struct {
	Generation uint64
}

type AlarmDueMsg struct {
	Alarm scheduler.Alarm
}

func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg.UI.PageSize <= 0 {
		cfg = config.Default()
	}
	if opts.Manager == nil {
		opts.Manager = tasks.NewManager()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Noop{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	m := Model{
		ActivePanel: PanelTimer,
		ShowTasks:   cfg.UI.ShowTasksPanel,
		cfg:         cfg,
		manager:     opts.Manager,
		scheduler:   opts.Scheduler,
		journal:     opts.Journal,
		notifier:    opts.Notifier,
		logger:      opts.Logger,
		now:         opts.Now,
		copyToClip:  opts.Clipboard,
		timer: timer.New(timer.Durations{
			Work:           cfg.Timer.Work(),
			ShortBreak:     cfg.Timer.ShortBreak(),
			LongBreak:      cfg.Timer.LongBreak(),
			LongBreakEvery: cfg.Timer.LongBreakEvery,
		}, opts.Now),
	}
	m.initBubbleComponents()
	m.Focus.Clamp(m.manager.Store())
	m.refreshTodayCount()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Prompt = "> "
	m.taskInput.Placeholder = "task description"
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ":"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.timerProgress = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	m.timerProgress.Width = 30

	m.runSpinner = spinner.New()
	m.runSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}

// Store exposes the task store backing the tasks panel.
func (m Model) Store() *tasks.Store {
	return m.manager.Store()
}

func (m Model) Timer() *timer.Timer {
	return m.timer
}

func (m Model) Manager() *tasks.Manager {
	return m.manager
}
