package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/skygaze/skygaze/internal/skygaze"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the local imagery cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which slots are cached and how big they are",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if a.sqlite == nil {
			fmt.Println("cache backend is none: nothing persisted")
			return nil
		}

		statuses, err := a.sqlite.Status(cmd.Context(), "")
		if err != nil {
			return fmt.Errorf("error reading cache status: %s", err)
		}
		if len(statuses) == 0 {
			fmt.Println("cache is empty")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Slot", "Bytes", "Updated At"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignLeft
		})

		var data [][]string
		for _, s := range statuses {
			data = append(data, []string{
				s.Slot,
				fmt.Sprintf("%d", s.Bytes),
				s.UpdatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}

		return table.Render()
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [feature]",
	Short: "Clear one feature's cached imagery (epic, mars, or apod)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := skygaze.Feature(args[0])
		if !f.Valid() {
			return fmt.Errorf("unknown feature %q: want epic, mars, or apod", args[0])
		}

		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.orch.Clear(cmd.Context(), f); err != nil {
			return fmt.Errorf("error clearing cache: %s", err)
		}

		if n := a.center.Current(); n.Visible {
			successColor.Println(n.Message)
		}

		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
