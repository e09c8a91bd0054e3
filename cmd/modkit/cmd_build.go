package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/modkit/pkg/buildinfo"
)

func runBuild(cmd *cobra.Command, args []string) error {
	catalog := buildinfo.DefaultCatalog()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, id := range catalog.Builds() {
			marker := ""
			if id == catalog.Newest() {
				marker = " (latest)"
			}
			fmt.Fprintf(out, "%2d  %s%s\n", id, catalog.Name(id), marker)
		}
		return nil
	}

	id, err := catalog.Parse(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s -> %s (id %d)\n", args[0], catalog.Name(id), id)
	return nil
}
