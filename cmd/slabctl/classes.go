package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/slab"
)

func init() {
	rootCmd.AddCommand(newClassesCmd())
}

func newClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "Print the size class table",
		Long: `The classes command prints every small-object size class with its
block size and the number of usable blocks in one slab page.

Example:
  slabctl classes
  slabctl classes --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses()
		},
	}
}

func runClasses() error {
	classes := slab.Classes()
	if jsonOut {
		return printJSON(classes)
	}
	printInfo("Class  Block  Blocks/page\n")
	for _, c := range classes {
		printInfo("%5d  %5d  %d\n", c.Index, c.BlockSize, c.BlocksPerPage)
	}
	printInfo("Requests above %d bytes are mapped directly in %d-byte pages.\n",
		slab.MaxSmallSize, slab.PageSize)
	return nil
}
