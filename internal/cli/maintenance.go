package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/grantgco/reading-library/internal/commands"
	"github.com/grantgco/reading-library/internal/entrypoint"
	"github.com/grantgco/reading-library/internal/exporters"
)

func (r *runner) datesCommand() *cli.Command {
	return &cli.Command{
		Name:  "dates",
		Usage: "Check how date text is interpreted",
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Show the date a piece of text resolves to",
				ArgsUsage: "TEXT",
				Action:    r.withApp(r.parseDate),
			},
		},
	}
}

func (r *runner) parseDate(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	text := strings.Join(cmd.Args().Slice(), " ")

	result, err := r.dispatch(app, commands.ParseDate{Text: text})
	if err != nil {
		return err
	}

	info := result.Value.(commands.DateInfo)
	if !info.Valid {
		return fmt.Errorf("could not parse date: %q", text)
	}
	fmt.Fprintln(r.out, info.Display)
	return nil
}

func (r *runner) exportCommand() *cli.Command {
	return &cli.Command{
		Name:   "export",
		Usage:  "Write the reading journal as markdown, one file per book",
		Action: r.withApp(r.export),
	}
}

func (r *runner) export(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	result, err := r.dispatch(app, commands.Export{})
	if err != nil {
		return err
	}

	exported := result.Value.(exporters.ExportResult)
	fmt.Fprintf(r.out, "Exported %d books (%d sessions, %d notes) to %s\n",
		exported.BooksProcessed, exported.SessionsProcessed, exported.NotesProcessed, exported.Directory)
	if exported.BooksFailed > 0 {
		fmt.Fprintf(r.out, "%d books could not be written; see the log for details.\n", exported.BooksFailed)
	}
	return nil
}

func (r *runner) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API with the task queue and export scheduler",
		Action: r.withApp(func(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return entrypoint.Serve(ctx, app, r.version)
		}),
	}
}
