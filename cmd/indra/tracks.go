package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"indra/pkg/cli"
	"indra/pkg/tracks"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "Baseline track dataset tools",
	Long:  `Commands for building and inspecting the baseline cyclone track dataset.`,
}

var tracksProcessFlags struct {
	input     string
	output    string
	startYear int
}

var tracksProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert an IBTrACS CSV export into baseline GeoJSON",
	Long: `Convert an IBTrACS CSV export into the baseline GeoJSON dataset the
server loads at startup. One LineString feature is written per storm,
carrying the storm's maximum observed wind speed.

Examples:
  # Convert a full export
  indra tracks process --input ibtracs.NI.list.v04r00.csv --output data/baseline_tracks.geojson

  # Keep only recent seasons
  indra tracks process --input ibtracs.csv --output baseline.geojson --start-year 1990`,
	RunE: runTracksProcess,
}

var tracksInspectFlags struct {
	file   string
	format string
}

var tracksInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize a baseline GeoJSON dataset",
	Long: `Print a per-storm summary of a baseline GeoJSON dataset.

Examples:
  # Text summary
  indra tracks inspect --file data/baseline_tracks.geojson

  # Machine-readable summary
  indra tracks inspect --file data/baseline_tracks.geojson --format json`,
	RunE: runTracksInspect,
}

func init() {
	rootCmd.AddCommand(tracksCmd)
	tracksCmd.AddCommand(tracksProcessCmd)
	tracksCmd.AddCommand(tracksInspectCmd)

	tracksProcessCmd.Flags().StringVarP(&tracksProcessFlags.input, "input", "i", "", "IBTrACS CSV file (required)")
	tracksProcessCmd.Flags().StringVarP(&tracksProcessFlags.output, "output", "o", "", "GeoJSON output file (required)")
	tracksProcessCmd.Flags().IntVar(&tracksProcessFlags.startYear, "start-year", 0, "drop storms from seasons before this year")
	_ = tracksProcessCmd.MarkFlagRequired("input")
	_ = tracksProcessCmd.MarkFlagRequired("output")

	tracksInspectCmd.Flags().StringVarP(&tracksInspectFlags.file, "file", "f", "", "baseline GeoJSON file (required)")
	tracksInspectCmd.Flags().StringVar(&tracksInspectFlags.format, "format", "text", "output format (text, json)")
	_ = tracksInspectCmd.MarkFlagRequired("file")
}

func runTracksProcess(cmd *cobra.Command, args []string) error {
	in, err := os.Open(tracksProcessFlags.input)
	if err != nil {
		return cli.NewCommandError("tracks process", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return cli.NewCommandError("tracks process", err)
	}

	out, err := os.Create(tracksProcessFlags.output)
	if err != nil {
		return cli.NewCommandError("tracks process", err)
	}
	defer out.Close()

	reporter := cli.NewProgressReporter(os.Stderr)
	reader := cli.NewCountingReader(in, info.Size(), reporter)

	count, err := tracks.ProcessIBTrACS(reader, out, tracks.ETLOptions{
		StartYear: tracksProcessFlags.startYear,
	})
	if err != nil {
		reporter.Error(err)
		return cli.NewCommandError("tracks process", err)
	}
	reporter.Finish()

	fmt.Printf("✓ Wrote %d track features to %s\n", count, tracksProcessFlags.output)
	return nil
}

// trackSummary is one row of the inspect output.
type trackSummary struct {
	SID      string  `json:"sid"`
	Name     string  `json:"name"`
	Season   int     `json:"season"`
	Vertices int     `json:"vertices"`
	MaxWind  float64 `json:"max_wind"`
}

func (s trackSummary) String() string {
	return fmt.Sprintf("%-14s %-12s %d  %3d pts  %5.1f kt", s.SID, s.Name, s.Season, s.Vertices, s.MaxWind)
}

func runTracksInspect(cmd *cobra.Command, args []string) error {
	collection, skipped, err := tracks.ReadFile(tracksInspectFlags.file)
	if err != nil {
		return cli.NewCommandError("tracks inspect", err)
	}

	summaries := make([]trackSummary, 0, collection.Len())
	for _, t := range collection.Tracks() {
		summaries = append(summaries, trackSummary{
			SID:      t.SID,
			Name:     t.Name,
			Season:   t.Season,
			Vertices: len(t.Coordinates),
			MaxWind:  t.MaxIntensity,
		})
	}

	formatter := cli.NewFormatter(cli.OutputFormat(strings.ToLower(tracksInspectFlags.format)))
	if jf, ok := formatter.(*cli.JSONFormatter); ok {
		return jf.FormatTo(os.Stdout, summaries)
	}

	for _, s := range summaries {
		if err := formatter.FormatTo(os.Stdout, s); err != nil {
			return err
		}
	}
	fmt.Printf("\n%d tracks", collection.Len())
	if skipped > 0 {
		fmt.Printf(" (%d malformed features skipped)", skipped)
	}
	fmt.Println()
	return nil
}
