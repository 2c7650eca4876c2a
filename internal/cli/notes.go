package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/grantgco/reading-library/internal/commands"
	"github.com/grantgco/reading-library/internal/entities"
	"github.com/grantgco/reading-library/internal/entrypoint"
	"github.com/grantgco/reading-library/internal/library"
)

func (r *runner) notesCommand() *cli.Command {
	return &cli.Command{
		Name:  "notes",
		Usage: "Add, list and delete notes",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a note to a book",
				ArgsUsage: "BOOK_ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "content", Aliases: []string{"c"}, Usage: "Note text (required)"},
					&cli.StringFlag{Name: "type", Usage: "review, highlight, thought or quote (default thought)"},
					&cli.StringFlag{Name: "title"},
					&cli.StringFlag{Name: "page", Usage: "Page number"},
				},
				Action: r.withApp(r.addNote),
			},
			{
				Name:      "list",
				Usage:     "List a book's notes",
				ArgsUsage: "BOOK_ID",
				Action:    r.withApp(r.listNotes),
			},
			{
				Name:      "delete",
				Usage:     "Delete a note",
				ArgsUsage: "NOTE_ID",
				Action:    r.withApp(r.deleteNote),
			},
		},
	}
}

func (r *runner) addNote(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	id, err := idArg(cmd, 0, "book id")
	if err != nil {
		return err
	}

	result, err := r.dispatch(app, commands.AddNote{BookID: id, Form: library.NoteForm{
		Type:       cmd.String("type"),
		Title:      cmd.String("title"),
		Content:    cmd.String("content"),
		PageNumber: cmd.String("page"),
	}})
	if err != nil {
		return err
	}

	note := result.Value.(*entities.Note)
	fmt.Fprintf(r.out, "Added %s %d.\n", note.Type, note.ID)
	return nil
}

func (r *runner) listNotes(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	id, err := idArg(cmd, 0, "book id")
	if err != nil {
		return err
	}

	result, err := r.dispatch(app, commands.ListNotes{BookID: id})
	if err != nil {
		return err
	}
	printNotes(r.out, result.Value.([]entities.Note))
	return nil
}

func (r *runner) deleteNote(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	id, err := idArg(cmd, 0, "note id")
	if err != nil {
		return err
	}

	result, err := r.dispatch(app, commands.DeleteNote{NoteID: id})
	if err != nil {
		return err
	}

	if result.Value.(bool) {
		fmt.Fprintf(r.out, "Deleted note %d.\n", id)
	} else {
		fmt.Fprintf(r.out, "Note %d was already deleted.\n", id)
	}
	return nil
}
