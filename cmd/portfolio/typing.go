package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/typing"
)

var (
	typingFrames  int
	typingLive    bool
	typingPhrases []string
)

var typingCmd = &cobra.Command{
	Use:   "typing",
	Short: "Print the typing effect frames",
	Long:  "Prints the frames of the subheading typing effect with their delays, or plays it live in the terminal with --live.",
	RunE:  runTyping,
}

func init() {
	typingCmd.Flags().IntVar(&typingFrames, "frames", 40, "Number of frames to print")
	typingCmd.Flags().BoolVar(&typingLive, "live", false, "Play the effect in the terminal until interrupted")
	typingCmd.Flags().StringSliceVar(&typingPhrases, "phrase", typing.DefaultPhrases, "Phrase to cycle (repeatable)")
	rootCmd.AddCommand(typingCmd)
}

func runTyping(cmd *cobra.Command, _ []string) error {
	loop, err := typing.NewLoop(typingPhrases, typing.DefaultTimings(), typing.RealClock{})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if typingLive {
		width := 0
		for _, p := range typingPhrases {
			width = max(width, len([]rune(p)))
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return loop.Run(ctx, typing.TargetFunc(func(text string) error {
			pad := width - len([]rune(text))
			_, err := fmt.Fprintf(out, "\r%s|%s", text, strings.Repeat(" ", pad))
			return err
		}))
	}

	for _, f := range loop.Frames(typingFrames) {
		fmt.Fprintf(out, "%6s  %q\n", f.Delay, f.Text)
	}
	return nil
}
