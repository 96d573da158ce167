package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/modus/internal/export"
	"github.com/sadopc/modus/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev"

type options struct {
	configPath string
	dbPath     string
	memory     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "modus",
		Short:         "Plan today's tasks, one mode at a time",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}
	root.Version = version
	root.SetVersionTemplate("modus {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/modus/config.toml)")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides config and MODUS_DB)")
	flags.BoolVar(&opts.memory, "memory", false, "keep everything in memory for this run")
	root.MarkFlagsMutuallyExclusive("db", "memory")

	root.AddCommand(
		newTUICmd(opts),
		newExportCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive planner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}
}

func runTUI(opts *options) error {
	sess, err := openSession(opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	app := tui.NewApp(sess.store, "")
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		sess.logger.Error("tui exited", "err", err)
		return err
	}
	return nil
}

func newExportCmd(opts *options) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as CSV, JSON or Markdown",
		Long: "Export every task and mode. Without --out the export is written to stdout;\n" +
			"Markdown is rendered for the terminal when stdout is one.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout(), opts, format, out)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "md", "export format: csv, json or md")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

func runExport(stdout io.Writer, opts *options, format, out string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "csv", "json", "md", "markdown":
	default:
		return fmt.Errorf("unknown format %q (want csv, json or md)", format)
	}

	sess, err := openSession(opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	snap := sess.store.Snapshot()
	sess.logger.Info("export", "format", format, "out", out, "tasks", len(snap.Tasks))

	switch format {
	case "csv":
		if out != "" {
			return export.ToCSV(snap.Tasks, snap.Modes, out)
		}
		return export.WriteCSV(stdout, snap.Tasks, snap.Modes)

	case "json":
		if out != "" {
			return export.ToJSON(snap.Tasks, snap.Modes, out)
		}
		data, err := export.MarshalJSON(snap.Tasks, snap.Modes, sess.store.Now())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err

	default:
		if out != "" {
			return export.ToMarkdownFile(snap.Tasks, snap.Modes, snap.Today, out)
		}
		md := export.ToMarkdown(snap.Tasks, snap.Modes, snap.Today)
		if width, ok := terminalWidth(stdout); ok {
			md = export.Render(md, width, true)
		}
		_, err := io.WriteString(stdout, md)
		return err
	}
}

// terminalWidth reports the width of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80, true
	}
	return width, true
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "modus %s\n", version)
			return err
		},
	}
}
