package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/timer"
	"github.com/focusmode/focusmode/internal/tui"
	"github.com/spf13/cobra"
)

func newTimerCommand() *cobra.Command {
	var (
		timerType string
		task      string
		server    string
		token     string
	)

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run the focus timer in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (server == "") != (token == "") {
				return errors.New("--server and --token must be given together")
			}

			clock := timer.New()
			defer clock.Close()
			if err := clock.Select(timerType); err != nil {
				return err
			}

			var recorder tui.Recorder
			if server != "" {
				recorder = tui.NewHTTPRecorder(server, token)
			}

			_, err := tea.NewProgram(tui.New(clock, recorder, task)).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&timerType, "type", models.TimerPomodoro, "pomodoro, short-break or long-break")
	cmd.Flags().StringVar(&task, "task", "", "what you are working on")
	cmd.Flags().StringVar(&server, "server", "", "FocusMode server URL to record finished runs")
	cmd.Flags().StringVar(&token, "token", "", "bearer token for --server")
	return cmd
}
