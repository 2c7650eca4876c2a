package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/grantgco/reading-library/internal/commands"
	"github.com/grantgco/reading-library/internal/dates"
	"github.com/grantgco/reading-library/internal/entities"
	"github.com/grantgco/reading-library/internal/entrypoint"
	"github.com/grantgco/reading-library/internal/library"
)

func (r *runner) sessionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "sessions",
		Usage: "Start, end and list reading sessions",
		Commands: []*cli.Command{
			{
				Name:      "start",
				Usage:     "Start reading a book",
				ArgsUsage: "BOOK_ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: `Start date, e.g. "yesterday" or 2024-01-15 (default today)`},
				},
				Action: r.withApp(r.startSession),
			},
			{
				Name:      "end",
				Usage:     "End the open reading session of a book",
				ArgsUsage: "BOOK_ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "End date (default today)"},
					&cli.StringFlag{Name: "notes", Aliases: []string{"n"}, Usage: "Notes about the session"},
					&cli.BoolFlag{Name: "completed", Aliases: []string{"c"}, Usage: "Mark the book as completed"},
				},
				Action: r.withApp(r.endSession),
			},
			{
				Name:      "list",
				Usage:     "List a book's reading sessions",
				ArgsUsage: "BOOK_ID",
				Action:    r.withApp(r.listSessions),
			},
		},
	}
}

func (r *runner) startSession(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	id, err := idArg(cmd, 0, "book id")
	if err != nil {
		return err
	}

	result, err := r.dispatch(app, commands.StartSession{BookID: id, DateText: cmd.String("date")})
	if err != nil {
		return err
	}

	session := result.Value.(*entities.ReadingSession)
	fmt.Fprintf(r.out, "Started reading on %s.\n", dates.Format(session.Started()))
	return nil
}

func (r *runner) endSession(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	id, err := idArg(cmd, 0, "book id")
	if err != nil {
		return err
	}

	result, err := r.dispatch(app, commands.EndSession{BookID: id, Request: library.EndSessionRequest{
		DateText:  cmd.String("date"),
		Notes:     cmd.String("notes"),
		Completed: cmd.Bool("completed"),
	}})
	if err != nil {
		return err
	}

	end := result.Value.(commands.SessionEnd)
	if !end.Ended {
		fmt.Fprintln(r.out, "No open reading session for this book.")
		return nil
	}

	ended, _ := end.Session.Ended()
	fmt.Fprintf(r.out, "Ended session %s → %s.\n", dates.Format(end.Session.Started()), dates.Format(ended))
	if cmd.Bool("completed") {
		fmt.Fprintln(r.out, "Marked as completed.")
	}
	return nil
}

func (r *runner) listSessions(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	id, err := idArg(cmd, 0, "book id")
	if err != nil {
		return err
	}

	result, err := r.dispatch(app, commands.ListSessions{BookID: id})
	if err != nil {
		return err
	}
	printSessions(r.out, result.Value.([]entities.ReadingSession))
	return nil
}
