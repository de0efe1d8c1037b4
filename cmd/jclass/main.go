package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/dhamidi/jclass/classfile"
	"github.com/dhamidi/jclass/format"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/kutil/util"
	"golang.org/x/term"
)

var log = commonlog.GetLogger("jclass")

type globalFlags struct {
	verbose   int
	logFile   string
	color     string
	densePool bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		util.Exit(1)
	}
	util.Exit(0)
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:          "jclass",
		Short:        "Inspect Java class files and jars",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.configure()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&g.verbose, "verbose", "v", "log verbosity (repeat for more)")
	pf.StringVar(&g.logFile, "log", "", "log to file instead of stderr")
	pf.StringVar(&g.color, "color", "auto", "colour output (auto, always, never)")
	pf.BoolVar(&g.densePool, "dense-pool", false, "number constant pool entries densely, without the slot after Long and Double")

	rootCmd.AddCommand(newDumpCmd(g))
	rootCmd.AddCommand(newCodeCmd(g))
	rootCmd.AddCommand(newScanCmd(g))
	rootCmd.AddCommand(newManifestCmd())

	return rootCmd
}

func (g *globalFlags) configure() error {
	switch g.color {
	case "auto", "never":
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	default:
		return fmt.Errorf("unknown color mode: %s (expected auto, always, or never)", g.color)
	}

	var path *string
	if g.logFile != "" {
		path = &g.logFile
	}
	commonlog.Configure(g.verbose, path)
	return nil
}

// decodeOptions tags every trace event of one class with its file name.
func (g *globalFlags) decodeOptions(name string) []classfile.Option {
	opts := []classfile.Option{
		classfile.WithTracer(commonlog.NewKeyValueLogger(log, "file", name)),
	}
	if g.densePool {
		opts = append(opts, classfile.WithPoolIndexing(classfile.PoolIndexDense))
	}
	return opts
}

func (g *globalFlags) styles(w io.Writer) format.Styles {
	switch g.color {
	case "always":
		return format.DefaultStyles()
	case "never":
		return format.Styles{}
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return format.DefaultStyles()
	}
	return format.Styles{}
}
