package main

import (
	"fmt"
	"strings"

	"github.com/henderiw/idxset/pkg/rangeset"
	"github.com/henderiw/idxset/pkg/sliceops"
	"github.com/spf13/cobra"
)

func newRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <set> <item>...",
		Short: "print the items left after removing the positions in the set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := rangeset.ParseRangeSet(args[0])
			if err != nil {
				return err
			}
			items := args[1:]
			if maxIdx, ok := set.Max(); ok && maxIdx >= len(items) {
				return fmt.Errorf("position %d out of range for %d items", maxIdx, len(items))
			}
			left := sliceops.Remove(items, set)
			c.log.Debug().Stringer("set", set).Int("removed", set.Size()).Int("left", len(left)).Msg("remove")
			return c.print(cmd.OutOrStdout(), left, strings.Join(left, "\n"))
		},
	}
}
