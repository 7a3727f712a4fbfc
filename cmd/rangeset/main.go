// Command rangeset folds indices and index ranges into a canonical set and
// applies sets to lists of items.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
