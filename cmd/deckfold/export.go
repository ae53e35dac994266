package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckfold/deckfold/internal/adapters/secondary/parser"
	"github.com/deckfold/deckfold/internal/domain/entities"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Re-serialize a presentation to normalized markdown",
	Long: `Segment a markdown file and join the slides back into a single
document using the format's delimiter convention. Useful for normalizing
slide spacing or converting between delimiter styles.

Example:
  deckfold export talk.md
  deckfold export talk.md --format horizontal_rule -o normalized.md`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Slide format: full_content, header, or horizontal_rule (default: auto-detect)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0]) // #nosec G304 - path comes from the CLI user
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	engine := parser.NewEngine()
	p, err := engine.Parse(string(data), entities.PresentationFormat(exportFormat), nil)
	if err != nil {
		return fmt.Errorf("segmenting %s: %w", args[0], err)
	}

	serialized, err := engine.Serialize(p)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", args[0], err)
	}

	if exportOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), serialized)
		return nil
	}

	if err := os.WriteFile(exportOutput, []byte(serialized+"\n"), 0o644); err != nil { // #nosec G306 - exported markdown is not sensitive
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", exportOutput)
	return nil
}
