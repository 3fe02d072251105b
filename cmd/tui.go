package cmd

import (
	"errors"
	"os"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/run"
	"github.com/spf13/cobra"

	"github.com/skygaze/skygaze/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive imagery browser",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		prog := tea.NewProgram(ui.New(a.orch, a.center), tea.WithAltScreen())

		var g run.Group
		g.Add(func() error {
			_, err := prog.Run()
			return err
		}, func(error) {
			prog.Quit()
		})
		g.Add(run.SignalHandler(cmd.Context(), os.Interrupt, syscall.SIGTERM))

		err = g.Run()
		var sigErr run.SignalError
		if errors.As(err, &sigErr) {
			return nil
		}

		return err
	},
}
