package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/skygaze/skygaze/internal/fetch"
	"github.com/skygaze/skygaze/internal/skygaze"
)

var (
	fetchDate  string
	fetchRover string
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	problemColor = color.New(color.FgRed, color.Bold)
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch imagery for one feature and print it",
}

var fetchEpicCmd = &cobra.Command{
	Use:   "epic",
	Short: "Fetch EPIC enhanced Earth imagery for a date",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runFetch(cmd, skygaze.FeatureEPIC)
	},
}

var fetchMarsCmd = &cobra.Command{
	Use:   "mars",
	Short: "Fetch Mars rover photos for a rover and Earth date",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runFetch(cmd, skygaze.FeatureMars)
	},
}

var fetchApodCmd = &cobra.Command{
	Use:   "apod",
	Short: "Fetch the astronomy picture of the day",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runFetch(cmd, skygaze.FeatureAPOD)
	},
}

func runFetch(cmd *cobra.Command, f skygaze.Feature) error {
	ctx := cmd.Context()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	p := fetch.Params{Date: fetchDate}
	if f == skygaze.FeatureMars {
		p.Rover = fetchRover
	}

	state := a.orch.Run(ctx, f, p)

	switch f {
	case skygaze.FeatureEPIC:
		if err := printEpicTable(a.orch.EpicRecords()); err != nil {
			return err
		}
	case skygaze.FeatureMars:
		if err := printMarsTable(a.orch.MarsPhotos()); err != nil {
			return err
		}
	default:
		printApod(a.orch)
	}

	if n := a.center.Current(); n.Visible {
		c := successColor
		if state != fetch.StateSuccess {
			c = problemColor
		}
		c.Fprintln(os.Stderr, n.Message)
	}

	if state == fetch.StateError {
		return fmt.Errorf("fetch failed")
	}

	return nil
}

func printEpicTable(records []skygaze.EpicRecord) error {
	if len(records) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Identifier", "Lat", "Lon", "Image URL"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, r := range records {
		data = append(data, []string{
			r.Identifier,
			fmt.Sprintf("%.2f", r.Latitude),
			fmt.Sprintf("%.2f", r.Longitude),
			r.ImageURL,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}

	return table.Render()
}

func printMarsTable(photos []skygaze.MarsPhoto) error {
	if len(photos) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"ID", "Sol", "Camera", "Earth Date", "Image URL"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, p := range photos {
		data = append(data, []string{
			p.ID,
			fmt.Sprintf("%d", p.Sol),
			p.CameraName,
			p.EarthDate,
			p.ImgSrc,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}

	return table.Render()
}

func printApod(orch *fetch.Orchestrator) {
	entry, ok := orch.Apod()
	if !ok {
		return
	}

	fmt.Println(entry.Title)
	if entry.Date != nil {
		fmt.Println(*entry.Date)
	}
	fmt.Println()
	fmt.Println(entry.Explanation)
	fmt.Println()
	fmt.Printf("%s (%s)\n", entry.URL, entry.MediaType)
	if entry.HDURL != nil {
		fmt.Printf("HD: %s\n", *entry.HDURL)
	}
	if entry.Copyright != nil {
		fmt.Printf("© %s\n", *entry.Copyright)
	}
}

func init() {
	fetchCmd.PersistentFlags().StringVar(&fetchDate, "date", "", "date to fetch, formatted YYYY-MM-DD")
	fetchMarsCmd.Flags().StringVar(&fetchRover, "rover", "curiosity", "rover to fetch photos from (curiosity, opportunity, spirit)")

	fetchCmd.AddCommand(fetchEpicCmd)
	fetchCmd.AddCommand(fetchMarsCmd)
	fetchCmd.AddCommand(fetchApodCmd)
}
