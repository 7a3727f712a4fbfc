package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputYAML = "yaml"
	outputJSON = "json"
)

type cli struct {
	output   string
	logLevel string
	log      zerolog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "rangeset",
		Short: "rangeset manipulates sets of indices stored as ranges.",
		Long: `rangeset manipulates sets of non-negative indices stored as sorted,
non-overlapping ranges. Sets are written as comma separated ranges and
indices, for example:

	rangeset union 1-3 10-12 4-9
	rangeset contains 1-3,10-12 2 5
	rangeset remove 0,2 a b c d
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	cmd.PersistentFlags().StringVarP(&c.output, "output", "o", outputText, "output format: text, yaml or json")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", zerolog.LevelWarnValue, "log level written to stderr")

	cmd.AddCommand(
		newUnionCmd(c),
		newContainsCmd(c),
		newRemoveCmd(c),
	)
	return cmd
}

func (c *cli) setup(cmd *cobra.Command) error {
	switch c.output {
	case outputText, outputYAML, outputJSON:
	default:
		return fmt.Errorf("unknown output format %q", c.output)
	}
	level, err := zerolog.ParseLevel(c.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.logLevel, err)
	}
	c.log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().Timestamp().Str("cmd", cmd.Name()).
		Logger()
	return nil
}

// print writes v in the selected output format, or text for the text
// format.
func (c *cli) print(w io.Writer, v any, text string) error {
	switch c.output {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		_, err := fmt.Fprintln(w, text)
		return err
	}
}
