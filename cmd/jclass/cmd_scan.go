package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/dhamidi/jclass/classfile"
	"github.com/dhamidi/jclass/jar"
	"github.com/spf13/cobra"
)

type scanSummary struct {
	classes int
	errors  []string
}

func newScanCmd(g *globalFlags) *cobra.Command {
	var timeout time.Duration
	var workers int

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Decode every class in a directory, jar, zip or class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := jar.Options{
				Workers: workers,
				Timeout: timeout,
				EntryOptions: func(e *jar.Entry) []classfile.Option {
					return g.decodeOptions(e.Path)
				},
			}
			return runScan(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "timeout per class")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "classes decoded in parallel (0 means one per CPU)")

	return cmd
}

func runScan(ctx context.Context, w io.Writer, target string, opts jar.Options) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	var archives []*jar.Archive
	var summary scanSummary

	if info.IsDir() {
		archives, summary.errors = scanDirectory(target)
	} else {
		switch filepath.Ext(target) {
		case ".jar", ".zip":
			a, err := jar.Open(target)
			if err != nil {
				return err
			}
			archives = append(archives, a)
		case ".class":
			a, err := classArchive(target, []string{target})
			if err != nil {
				return err
			}
			archives = append(archives, a)
		default:
			return fmt.Errorf("unsupported file type: %s", filepath.Ext(target))
		}
	}

	for i := 0; i < len(archives); i++ {
		a := archives[i]
		archives = append(archives, nestedArchives(a, &summary)...)
		scanArchive(ctx, w, a, opts, &summary)
	}

	fmt.Fprintf(w, "\n=== SCAN COMPLETE ===\n")
	fmt.Fprintf(w, "Classes decoded: %d\n", summary.classes)
	fmt.Fprintf(w, "Errors: %d\n", len(summary.errors))
	for _, e := range summary.errors {
		fmt.Fprintf(w, "  - %s\n", e)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

func scanArchive(ctx context.Context, w io.Writer, a *jar.Archive, opts jar.Options, summary *scanSummary) {
	classes := a.Classes()
	fmt.Fprintf(w, "Found %d classes in %s\n", len(classes), a.Path)
	if a.MainClass != "" {
		fmt.Fprintf(w, "Main-Class: %s\n", a.MainClass)
	}

	results := a.DecodeAll(ctx, opts)
	for i, r := range results {
		fmt.Fprintf(w, "[%d/%d] ", i+1, len(results))
		if r.Err != nil {
			fmt.Fprintf(w, "[ERROR] %s: %v\n", r.Entry.Path, r.Err)
			summary.errors = append(summary.errors, fmt.Sprintf("%s: %v", a.Path, r.Err))
			continue
		}
		fmt.Fprintf(w, "[OK] %s (%s, %s)\n", r.Entry.Path, r.Class.ClassName(), r.Class.JavaVersion())
		summary.classes++
	}
}

// nestedArchives opens the jars stored as resources of a.
func nestedArchives(a *jar.Archive, summary *scanSummary) []*jar.Archive {
	var out []*jar.Archive
	for _, e := range a.Resources() {
		if path.Ext(e.Path) != ".jar" {
			continue
		}
		nested, err := jar.Read(a.Path+"!"+e.Path, e.Data)
		if err != nil {
			summary.errors = append(summary.errors, err.Error())
			continue
		}
		out = append(out, nested)
	}
	return out
}

// scanDirectory collects loose class files into a single archive and opens
// every jar or zip below root.
func scanDirectory(root string) ([]*jar.Archive, []string) {
	var classFiles []string
	var archives []*jar.Archive
	var errors []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			errors = append(errors, fmt.Sprintf("walk %s: %v", p, err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(p) {
		case ".class":
			classFiles = append(classFiles, p)
		case ".jar", ".zip":
			a, err := jar.Open(p)
			if err != nil {
				errors = append(errors, err.Error())
				return nil
			}
			archives = append(archives, a)
		}
		return nil
	})
	if err != nil {
		errors = append(errors, fmt.Sprintf("walk %s: %v", root, err))
	}

	if len(classFiles) > 0 {
		a, err := classArchive(root, classFiles)
		if err != nil {
			errors = append(errors, err.Error())
		} else {
			archives = append([]*jar.Archive{a}, archives...)
		}
	}
	return archives, errors
}

// classArchive wraps class files from disk so they are decoded the same
// way as jar entries.
func classArchive(name string, files []string) (*jar.Archive, error) {
	a := &jar.Archive{Path: name}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		a.Entries = append(a.Entries, jar.Entry{
			Name: filepath.Base(f),
			Path: f,
			Data: data,
			Kind: jar.KindClass,
		})
	}
	return a, nil
}
