package main

import (
	"fmt"

	"github.com/dhamidi/jclass/classfile"
	"github.com/dhamidi/jclass/format"
	"github.com/spf13/cobra"
)

func newCodeCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code <file.class> [method]",
		Short: "Print the Code attributes of a class file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			cf, err := classfile.ParseFile(filename, g.decodeOptions(filename)...)
			if err != nil {
				return fmt.Errorf("parse class file %s: %w", filename, err)
			}

			out := cmd.OutOrStdout()
			enc := format.NewCodeEncoder(out).WithStyles(g.styles(out))
			if len(args) == 2 {
				if len(cf.MethodsNamed(args[1])) == 0 {
					return fmt.Errorf("no method %s in %s", args[1], cf.ClassName())
				}
				enc.Method(args[1])
			}
			return enc.Encode(cf)
		},
	}

	return cmd
}
