package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/grantgco/reading-library/internal/commands"
	"github.com/grantgco/reading-library/internal/entities"
	"github.com/grantgco/reading-library/internal/entrypoint"
	"github.com/grantgco/reading-library/internal/library"
)

func (r *runner) booksCommand() *cli.Command {
	return &cli.Command{
		Name:  "books",
		Usage: "Add, list and manage books",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a book to the library",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Book title (required)"},
					&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "Author (required)"},
					&cli.StringFlag{Name: "type", Usage: "physical, ebook or audiobook"},
					&cli.StringFlag{Name: "status", Usage: "to_read, reading, completed or abandoned"},
					&cli.StringFlag{Name: "isbn"},
					&cli.StringFlag{Name: "publisher"},
					&cli.StringFlag{Name: "year", Usage: "Publication year"},
					&cli.StringFlag{Name: "pages", Usage: "Page count"},
				},
				Action: r.withApp(r.addBook),
			},
			{
				Name:  "list",
				Usage: "List books, optionally filtered",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "author", Usage: "Only books by this author"},
					&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Match titles and authors"},
				},
				Action: r.withApp(r.listBooks),
			},
			{
				Name:      "search",
				Usage:     "Search titles and authors",
				ArgsUsage: "QUERY",
				Action: r.withApp(func(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
					return r.printBookList(app, commands.ListBooks{Query: strings.Join(cmd.Args().Slice(), " ")})
				}),
			},
			{
				Name:      "show",
				Usage:     "Show a book with its sessions and notes",
				ArgsUsage: "BOOK_ID",
				Action:    r.withApp(r.showBook),
			},
			{
				Name:      "status",
				Usage:     "Set a book's reading status",
				ArgsUsage: "BOOK_ID STATUS",
				Action:    r.withApp(r.updateStatus),
			},
			{
				Name:      "delete",
				Usage:     "Delete a book with its sessions and notes",
				ArgsUsage: "BOOK_ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Do not ask for confirmation"},
				},
				Action: r.withApp(r.deleteBook),
			},
			{
				Name:  "authors",
				Usage: "List authors, or suggest matches for --prefix",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "prefix", Usage: "Text the author name should contain"},
				},
				Action: r.withApp(r.listAuthors),
			},
		},
	}
}

func (r *runner) addBook(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	result, err := r.dispatch(app, commands.AddBook{Form: library.BookForm{
		Title:           cmd.String("title"),
		Author:          cmd.String("author"),
		Type:            cmd.String("type"),
		Status:          cmd.String("status"),
		ISBN:            cmd.String("isbn"),
		Publisher:       cmd.String("publisher"),
		PublicationYear: cmd.String("year"),
		Pages:           cmd.String("pages"),
	}})
	if err != nil {
		return err
	}

	book := result.Value.(*entities.Book)
	fmt.Fprintf(r.out, "Added book %d: %s by %s\n", book.ID, book.Title, book.Author)
	return nil
}

func (r *runner) listBooks(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	return r.printBookList(app, commands.ListBooks{
		Query:  cmd.String("search"),
		Author: cmd.String("author"),
	})
}

func (r *runner) printBookList(app *entrypoint.App, command commands.ListBooks) error {
	result, err := r.dispatch(app, command)
	if err != nil {
		return err
	}
	printBooks(r.out, result.Value.([]entities.Book))
	return nil
}

func (r *runner) showBook(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	id, err := idArg(cmd, 0, "book id")
	if err != nil {
		return err
	}

	result, err := r.dispatch(app, commands.ShowBook{BookID: id})
	if err != nil {
		return err
	}
	printBookDetail(r.out, result.Value.(*entities.Book))
	return nil
}

func (r *runner) updateStatus(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	id, err := idArg(cmd, 0, "book id")
	if err != nil {
		return err
	}
	status := strings.Join(cmd.Args().Slice()[1:], " ")
	if status == "" {
		return fmt.Errorf("missing status argument")
	}

	result, err := r.dispatch(app, commands.UpdateStatus{BookID: id, Status: status})
	if err != nil {
		return err
	}

	book := result.Value.(*entities.Book)
	fmt.Fprintf(r.out, "%s is now %s\n", book.Title, book.Status.Label())
	return nil
}

func (r *runner) deleteBook(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	id, err := idArg(cmd, 0, "book id")
	if err != nil {
		return err
	}

	result, err := r.dispatch(app, commands.DeleteBook{BookID: id, Confirmed: cmd.Bool("yes")})
	if err != nil {
		return err
	}

	switch {
	case result.Cancelled:
		fmt.Fprintln(r.out, "Cancelled.")
	case result.Value.(bool):
		fmt.Fprintf(r.out, "Deleted book %d.\n", id)
	default:
		fmt.Fprintf(r.out, "Book %d was already deleted.\n", id)
	}
	return nil
}

func (r *runner) listAuthors(ctx context.Context, cmd *cli.Command, app *entrypoint.App) error {
	result, err := r.dispatch(app, commands.ListAuthors{Query: cmd.String("prefix")})
	if err != nil {
		return err
	}

	authors := result.Value.([]string)
	if len(authors) == 0 {
		fmt.Fprintln(r.out, "No authors found.")
		return nil
	}
	for _, author := range authors {
		fmt.Fprintln(r.out, author)
	}
	return nil
}
