package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckfold/deckfold/internal/adapters/secondary/parser"
	"github.com/deckfold/deckfold/internal/domain/entities"
)

var inspectFormat string

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show how a markdown file folds into slides",
	Long: `Segment a markdown file and print the resulting slide structure
without starting a server.

Example:
  deckfold inspect talk.md
  deckfold inspect talk.md --format header`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "", "Slide format: full_content, header, or horizontal_rule (default: auto-detect)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0]) // #nosec G304 - path comes from the CLI user
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	engine := parser.NewEngine()
	p, err := engine.Parse(string(data), entities.PresentationFormat(inspectFormat), nil)
	if err != nil {
		return fmt.Errorf("segmenting %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Format: %s\n", p.Format)
	fmt.Fprintf(out, "Slides: %d\n", p.SlideCount())
	if title := p.Title(); title != "" {
		fmt.Fprintf(out, "Title:  %s\n", title)
	}

	for _, slide := range p.Slides {
		fmt.Fprintf(out, "\n%3d. %s (lines %d-%d)\n",
			slide.Index+1, slide.Title, slide.Location.StartLine, slide.Location.EndLine)
		for _, chunk := range slide.Chunks {
			fmt.Fprintf(out, "     - %s chunk %s\n", chunk.Type, chunk.ID)
		}
		if slide.HasNotes() {
			fmt.Fprintf(out, "     - speaker notes\n")
		}
	}

	return nil
}
