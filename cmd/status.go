package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/dkrenn/tempus/internal/adapters/statefile"
	"github.com/dkrenn/tempus/internal/domain"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved clock state",
	Long:  `Print the persisted state of every mode without opening the display.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := appConfig.ToDefaults()
		if err != nil {
			return err
		}

		store := statefile.New(appConfig.StatePath(), appLogger)
		state, err := store.Load(defaults, time.Now())
		if err != nil {
			return err
		}

		if statusJSON {
			return printStatusJSON(state)
		}
		printStatusText(state)
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
}

func printStatusJSON(state *domain.AppState) error {
	remaining, pol := state.Event.Remaining(time.Now())
	result := map[string]interface{}{
		"mode": state.ActiveMode.String(),
		"countdown": map[string]interface{}{
			"initial": state.Countdown.Initial().String(),
			"current": state.Countdown.Current().String(),
			"state":   state.Countdown.State().String(),
			"met":     state.Countdown.MetEnabled(),
			"elapsed": state.Countdown.Elapsed().String(),
		},
		"timer": map[string]interface{}{
			"current": state.Timer.Current().String(),
			"state":   state.Timer.State().String(),
		},
		"pomodoro": map[string]interface{}{
			"side":    state.Pomodoro.ActiveSide().String(),
			"current": state.Pomodoro.Current().String(),
			"state":   state.Pomodoro.State().String(),
			"rounds":  state.Pomodoro.Rounds(),
		},
		"event": map[string]interface{}{
			"target":    domain.FormatEventTime(state.Event.Target()),
			"title":     state.Event.Title(),
			"remaining": remaining.String(),
			"polarity":  pol.String(),
		},
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printStatusText(state *domain.AppState) {
	width := 60
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 && w < width {
		width = w
	}
	rule := strings.Repeat("-", width)

	fmt.Printf("Active mode: %s\n%s\n", state.ActiveMode, rule)

	fmt.Printf("countdown  %s of %s (%s)", state.Countdown.Current(), state.Countdown.Initial(), state.Countdown.State())
	if state.Countdown.InMet() {
		fmt.Printf(", %s past zero", state.Countdown.Elapsed())
	}
	fmt.Println()

	fmt.Printf("timer      %s (%s)\n", state.Timer.Current(), state.Timer.State())

	fmt.Printf("pomodoro   %s %s (%s), round %d\n",
		state.Pomodoro.ActiveSide(), state.Pomodoro.Current(), state.Pomodoro.State(), state.Pomodoro.Rounds())

	remaining, pol := state.Event.Remaining(time.Now())
	title := state.Event.Title()
	if title == "" {
		title = "event"
	}
	fmt.Printf("event      %s %s %q at %s\n", remaining, pol, title, domain.FormatEventTime(state.Event.Target()))
}
