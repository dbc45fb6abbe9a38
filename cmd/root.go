// Package cmd provides the CLI commands for the tempus application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dkrenn/tempus/internal/adapters/git"
	"github.com/dkrenn/tempus/internal/adapters/history"
	"github.com/dkrenn/tempus/internal/adapters/notification"
	"github.com/dkrenn/tempus/internal/adapters/statefile"
	"github.com/dkrenn/tempus/internal/adapters/tui"
	"github.com/dkrenn/tempus/internal/app"
	"github.com/dkrenn/tempus/internal/config"
	"github.com/dkrenn/tempus/internal/domain"
	"github.com/dkrenn/tempus/internal/events"
	"github.com/dkrenn/tempus/internal/logging"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Flags
	configPath    string
	countdownFlag string
	workFlag      string
	breakFlag     string
	eventFlag     string
	modeFlag      string
	styleFlag     string
	decisFlag     bool
	notifyFlag    bool
	blinkFlag     bool
	soundFlag     bool
	metFlag       bool
	resetFlag     bool

	// Loaded during PersistentPreRunE, shared by all commands.
	appConfig *config.Config
	appLogger zerolog.Logger
	closeLog  func()
)

var rootCmd = &cobra.Command{
	Use:   "tempus",
	Short: "tempus - a terminal clock with countdown, timer, pomodoro and event modes",
	Long: `tempus is a fullscreen terminal clock. It counts down, counts up,
runs pomodoro work/break cycles, tracks the distance to a calendar
event and shows the local time, all drawn with big block glyphs.

Run "tempus" with no arguments to open the interactive display.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if closeLog != nil {
			closeLog()
		}
		return nil
	},
	RunE: runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.tempus/config.toml)")

	rootCmd.Flags().StringVarP(&countdownFlag, "countdown", "c", "", "Countdown start value, e.g. \"25:00\" or \"1d 10:00:00\"")
	rootCmd.Flags().StringVarP(&workFlag, "work", "w", "", "Pomodoro work duration")
	rootCmd.Flags().StringVarP(&breakFlag, "pause", "p", "", "Pomodoro break duration")
	rootCmd.Flags().StringVar(&eventFlag, "event", "", "Event target, e.g. \"2026-12-31 00:00:00\" or \"time=...,title=...\"")
	rootCmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Start mode: countdown, timer, pomodoro, event, localtime")
	rootCmd.Flags().StringVarP(&styleFlag, "style", "s", "", "Glyph style: full, light, medium, dark, thick, cross, braille")
	rootCmd.Flags().BoolVarP(&decisFlag, "decis", "d", false, "Show deciseconds")
	rootCmd.Flags().BoolVar(&notifyFlag, "notify", true, "Desktop notification on completion")
	rootCmd.Flags().BoolVar(&blinkFlag, "blink", true, "Blink the display on completion")
	rootCmd.Flags().BoolVar(&soundFlag, "sound", false, "Beep on completion")
	rootCmd.Flags().BoolVar(&metFlag, "met", false, "Countdown keeps counting up past zero")
	rootCmd.Flags().BoolVar(&resetFlag, "reset", false, "Discard saved state and start fresh")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("tempus\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statusCmd)
}

// initializeServices loads the config and opens the log file.
func initializeServices() error {
	var err error
	if configPath != "" {
		appConfig, err = config.LoadFrom(configPath)
	} else {
		appConfig, err = config.Load()
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(appConfig.Storage.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	appLogger, closeLog, err = logging.Open(appConfig.LogPath())
	if err != nil {
		return err
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx, cancel
}

// runInteractive launches the fullscreen display for the bare command.
func runInteractive(cmd *cobra.Command, args []string) error {
	defaults, err := appConfig.ToDefaults()
	if err != nil {
		return err
	}

	store := statefile.New(appConfig.StatePath(), appLogger)
	if resetFlag {
		if err := store.Reset(); err != nil {
			return fmt.Errorf("reset state: %w", err)
		}
	}

	state, err := store.Load(defaults, time.Now())
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cmd, state); err != nil {
		return err
	}

	hist, err := history.NewSQLiteStore(appConfig.HistoryPath())
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer hist.Close()

	workdir, _ := os.Getwd()

	ctx, cancel := setupSignalHandler()
	defer cancel()

	bus := events.NewBus(64)
	program := tui.NewProgram(ctx, bus)

	engine := app.New(app.Options{
		State:    state,
		Bus:      bus,
		Notifier: notification.NewDesktopNotifier(),
		Store:    store,
		History:  hist,
		Detector: git.NewDetector(),
		Logger:   appLogger,
		Workdir:  workdir,
		Render: func(snap app.Snapshot) {
			tui.Send(program, snap)
		},
	})

	engineErr := make(chan error, 1)
	go func() {
		engineErr <- engine.Run(ctx)
	}()

	_, tuiErr := program.Run()
	cancel()

	if err := <-engineErr; err != nil && err != context.Canceled {
		return err
	}
	bus.Wait()

	if tuiErr != nil {
		return fmt.Errorf("display error: %w", tuiErr)
	}
	return nil
}

// applyFlagOverrides layers explicitly passed flags over the restored
// state. Flags win over both the saved snapshot and the config file.
func applyFlagOverrides(cmd *cobra.Command, state *domain.AppState) error {
	flags := cmd.Flags()

	if flags.Changed("countdown") {
		d, err := domain.ParseDuration(countdownFlag)
		if err != nil {
			return fmt.Errorf("--countdown: %w", err)
		}
		state.Countdown.SetInitial(d)
	}
	if flags.Changed("work") {
		d, err := domain.ParseDuration(workFlag)
		if err != nil {
			return fmt.Errorf("--work: %w", err)
		}
		state.Pomodoro.WorkClock().SetInitial(d)
	}
	if flags.Changed("pause") {
		d, err := domain.ParseDuration(breakFlag)
		if err != nil {
			return fmt.Errorf("--pause: %w", err)
		}
		state.Pomodoro.BreakClock().SetInitial(d)
	}
	if flags.Changed("event") {
		target, title, err := domain.ParseEventTarget(eventFlag)
		if err != nil {
			return fmt.Errorf("--event: %w", err)
		}
		state.Event.SetTarget(target, time.Now())
		if title != "" {
			state.Event.SetTitle(title)
		}
	}
	if flags.Changed("mode") {
		mode, err := config.ResolveMode(modeFlag)
		if err != nil {
			return err
		}
		state.ActiveMode = mode
	}
	if flags.Changed("style") {
		style, err := config.ResolveStyle(styleFlag)
		if err != nil {
			return err
		}
		state.Style = style
	}
	if flags.Changed("decis") {
		state.ShowDecis = decisFlag
	}
	if flags.Changed("notify") {
		state.NotifyEnabled = notifyFlag
	}
	if flags.Changed("blink") {
		state.BlinkEnabled = blinkFlag
	}
	if flags.Changed("sound") {
		state.SoundEnabled = soundFlag
	}
	if flags.Changed("met") {
		state.Countdown.SetMetEnabled(metFlag)
	}
	return nil
}
