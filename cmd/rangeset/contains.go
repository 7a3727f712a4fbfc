package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/henderiw/idxset/pkg/rangeset"
	"github.com/spf13/cobra"
)

type membership struct {
	Index    int  `json:"index" yaml:"index"`
	Contains bool `json:"contains" yaml:"contains"`
}

func newContainsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "contains <set> <index>...",
		Short: "report which indices are in the set; fails if any is missing",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := rangeset.ParseRangeSet(args[0])
			if err != nil {
				return err
			}
			var (
				result  []membership
				lines   []string
				missing []string
			)
			for _, arg := range args[1:] {
				idx, err := strconv.Atoi(arg)
				if err != nil || idx < 0 {
					return fmt.Errorf("invalid index %q", arg)
				}
				ok := set.Contains(idx)
				result = append(result, membership{Index: idx, Contains: ok})
				lines = append(lines, fmt.Sprintf("%d\t%t", idx, ok))
				if !ok {
					missing = append(missing, arg)
				}
			}
			if err := c.print(cmd.OutOrStdout(), result, strings.Join(lines, "\n")); err != nil {
				return err
			}
			if len(missing) > 0 {
				return fmt.Errorf("%s not in %s", strings.Join(missing, ", "), set)
			}
			return nil
		},
	}
}
