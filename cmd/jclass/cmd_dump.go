package main

import (
	"fmt"
	"io"

	"github.com/dhamidi/jclass/classfile"
	"github.com/dhamidi/jclass/format"
	"github.com/spf13/cobra"
)

func newDumpCmd(g *globalFlags) *cobra.Command {
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump <file.class>...",
		Short: "Dump the structure of one or more class files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			enc, err := g.newEncoder(dumpFormat, out)
			if err != nil {
				return err
			}
			for _, filename := range args {
				cf, err := classfile.ParseFile(filename, g.decodeOptions(filename)...)
				if err != nil {
					return fmt.Errorf("parse class file %s: %w", filename, err)
				}
				if err := enc.Encode(cf); err != nil {
					return fmt.Errorf("encode %s: %w", dumpFormat, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (line, json, java)")

	return cmd
}

func (g *globalFlags) newEncoder(name string, w io.Writer) (format.Encoder, error) {
	switch name {
	case "line":
		return format.NewLineEncoder(w).WithStyles(g.styles(w)), nil
	case "json":
		return format.NewJSONEncoder(w), nil
	case "java":
		return format.NewJavaEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (expected line, json, or java)", name)
	}
}
