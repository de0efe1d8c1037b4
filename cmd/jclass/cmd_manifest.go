package main

import (
	"fmt"

	"github.com/dhamidi/jclass/jar"
	"github.com/spf13/cobra"
)

func newManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest <file.jar>",
		Short: "Print the manifest of a jar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := jar.Open(args[0])
			if err != nil {
				return err
			}
			if a.Manifest == nil {
				return fmt.Errorf("%s has no readable manifest", args[0])
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), a.Manifest.String())
			return err
		},
	}

	return cmd
}
