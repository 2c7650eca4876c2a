// Package cli is the command-line front end. Every subcommand turns its
// arguments into a commands.Command and runs it through the dispatcher.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/grantgco/reading-library/internal/apperr"
	"github.com/grantgco/reading-library/internal/commands"
	"github.com/grantgco/reading-library/internal/config"
	"github.com/grantgco/reading-library/internal/entrypoint"
)

// Option customises the root command.
type Option func(*runner)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *runner) {
		r.in = in
		r.out = out
	}
}

// WithAppOptions passes options through to entrypoint.Open.
func WithAppOptions(opts ...entrypoint.Option) Option {
	return func(r *runner) {
		r.appOpts = append(r.appOpts, opts...)
	}
}

type runner struct {
	cfg     *config.Config
	version string
	in      io.Reader
	out     io.Writer
	appOpts []entrypoint.Option
}

// NewRootCommand builds the "library" command tree.
func NewRootCommand(cfg *config.Config, version string, opts ...Option) *cli.Command {
	r := &runner{
		cfg:     cfg,
		version: version,
		in:      os.Stdin,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}

	return &cli.Command{
		Name:    "library",
		Usage:   "Track the books you read, your reading sessions and your notes",
		Version: version,
		Writer:  r.out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the library database (overrides DATABASE_PATH)",
			},
			&cli.StringFlag{
				Name:  "export-dir",
				Usage: "Directory for journal export (overrides EXPORT_DIR)",
			},
		},
		Commands: []*cli.Command{
			r.booksCommand(),
			r.sessionsCommand(),
			r.notesCommand(),
			r.datesCommand(),
			r.exportCommand(),
			r.serveCommand(),
		},
	}
}

// withApp opens the application for one invocation and closes it afterwards.
func (r *runner) withApp(fn func(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if path := cmd.String("db"); path != "" {
			r.cfg.Database.Path = path
		}
		if dir := cmd.String("export-dir"); dir != "" {
			r.cfg.Export.Dir = dir
		}

		app, err := entrypoint.Open(r.cfg, r.appOpts...)
		if err != nil {
			return err
		}
		defer app.Close()

		return friendlyError(fn(ctx, cmd, app))
	}
}

// dispatch runs a command with prompts on the runner's terminal.
func (r *runner) dispatch(app *entrypoint.App, command commands.Command) (commands.Result, error) {
	return app.Dispatcher(newPromptConfirmer(r.in, r.out)).Dispatch(command)
}

// idArg parses the positional argument at index as a record id.
func idArg(cmd *cli.Command, index int, name string) (uint, error) {
	text := strings.TrimSpace(cmd.Args().Get(index))
	if text == "" {
		return 0, fmt.Errorf("missing %s argument", name)
	}
	id, err := strconv.ParseUint(text, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive number", name, text)
	}
	return uint(id), nil
}

// friendlyError rewrites library failures into messages for a terminal.
func friendlyError(err error) error {
	if err == nil {
		return nil
	}

	var validationErr *apperr.ValidationError
	if errors.As(err, &validationErr) {
		var b strings.Builder
		b.WriteString("invalid input:")
		for _, line := range strings.Split(strings.TrimPrefix(validationErr.Error(), "validation failed: "), "; ") {
			b.WriteString("\n  ")
			b.WriteString(line)
		}
		return errors.New(b.String())
	}
	if errors.Is(err, commands.ErrExportNotConfigured) {
		return err
	}
	if apperr.IsNotFound(err) {
		return fmt.Errorf("%w (check the id with the list commands)", err)
	}
	return err
}
