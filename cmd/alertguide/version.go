package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/alertguide/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "alertguide %s\n", version.Version)
		},
	}
}
