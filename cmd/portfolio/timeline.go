package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/resume"
	"github.com/Zachkp/portfolio/internal/timeline"
)

var (
	timelineResume string
	timelineURL    string
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Render the experience timeline fragment to stdout",
	RunE:  runTimeline,
}

func init() {
	timelineCmd.Flags().StringVar(&timelineResume, "resume", "resume.json", "Path to the resume document")
	timelineCmd.Flags().StringVar(&timelineURL, "url", "", "Fetch the resume from this URL instead of a file")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, _ []string) error {
	var src resume.Source = resume.FileSource{Path: timelineResume}
	from := timelineResume
	if timelineURL != "" {
		src = resume.HTTPSource{URL: timelineURL}
		from = timelineURL
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	frag := &timeline.Fragment{}
	outcome := timeline.NewLoader(src, log).Load(cmd.Context(), frag)
	if outcome == timeline.Skipped {
		return fmt.Errorf("%s has no work array", from)
	}

	out := cmd.OutOrStdout()
	if _, err := frag.WriteTo(out); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return nil
}
