package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/henderiw/idxset/pkg/rangeset"
	"github.com/spf13/cobra"
)

type setResult struct {
	Ranges rangeset.RangeSet `json:"ranges" yaml:"ranges"`
	Size   int               `json:"size" yaml:"size"`
}

func newUnionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "union <set>...",
		Short: "print the union of the given sets; - reads one set per line from stdin",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				set  rangeset.RangeSet
				errs error
			)
			for _, arg := range args {
				if arg == "-" {
					s, err := c.readSets(cmd.InOrStdin())
					errs = errors.Join(errs, err)
					set = set.UnionSet(s)
					continue
				}
				s, err := rangeset.ParseRangeSet(arg)
				errs = errors.Join(errs, err)
				set = set.UnionSet(s)
				c.log.Debug().Str("arg", arg).Stringer("set", set).Int("size", set.Size()).Msg("union")
			}
			if errs != nil {
				return errs
			}
			return c.print(cmd.OutOrStdout(), setResult{Ranges: set, Size: set.Size()}, set.String())
		},
	}
}

func (c *cli) readSets(r io.Reader) (rangeset.RangeSet, error) {
	var (
		set  rangeset.RangeSet
		errs error
	)
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		s, err := rangeset.ParseRangeSet(scanner.Text())
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("stdin line %d: %w", line, err))
		}
		set = set.UnionSet(s)
		c.log.Debug().Int("line", line).Stringer("set", set).Msg("union")
	}
	return set, errors.Join(errs, scanner.Err())
}
