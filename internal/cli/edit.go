package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/config"
	"github.com/matzehuels/arbor/pkg/editor"
)

// editOpts holds the command-line flags for the edit command.
type editOpts struct {
	configPath string
	logFile    string
}

// editCommand creates the terminal editor command.
func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit [seed]",
		Short: "Edit a document in the terminal",
		Long: `Edit a document in the terminal, starting from an optional seed file.

Keys: ↑/↓ move, enter opens the context menu, a add child, x cut, c copy,
v paste, d delete, y copy the node's label path to the clipboard, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var seed string
			if len(args) == 1 {
				seed = args[0]
			}
			return c.runEdit(cmd.Context(), seed, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (TOML)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while the editor runs")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, seed string, opts editOpts) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if seed != "" {
		cfg.Document.Seed = seed
	}
	doc, err := loadDocument(cfg.Document)
	if err != nil {
		return err
	}

	// The editor owns the terminal; logs go to a file or nowhere.
	restore, err := c.redirectLogs(opts.logFile)
	if err != nil {
		return err
	}
	defer restore()

	ctrl := editor.New(doc)
	applied := 0
	unsubscribe := ctrl.Subscribe(func(editor.Snapshot) { applied++ })
	defer unsubscribe()

	p := tea.NewProgram(newEditModel(ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("editor: %w", err)
	}

	snap := ctrl.Snapshot()
	printSuccess("%d edits applied", applied)
	printDetail("%d nodes at revision %d", snap.Forest.Len(), snap.Revision)
	return nil
}

// redirectLogs points the logger at path, or discards output when path is
// empty, and returns a func restoring stderr.
func (c *CLI) redirectLogs(path string) (func(), error) {
	if path == "" {
		c.Logger.SetOutput(io.Discard)
		return func() { c.Logger.SetOutput(os.Stderr) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	c.Logger.SetOutput(f)
	return func() {
		c.Logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
