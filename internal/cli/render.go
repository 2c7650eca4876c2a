package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/grantgco/reading-library/internal/dates"
	"github.com/grantgco/reading-library/internal/entities"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printBooks(w io.Writer, books []entities.Book) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tTYPE\tSTATUS")
	for _, book := range books {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", book.ID, book.Title, book.Author, book.Type.Label(), book.Status.Label())
	}
	tw.Flush()
}

func printBookDetail(w io.Writer, book *entities.Book) {
	fmt.Fprintf(w, "%s\n", book.Title)
	fmt.Fprintf(w, "by %s\n\n", book.Author)

	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%d\n", book.ID)
	fmt.Fprintf(tw, "Type:\t%s\n", book.Type.Label())
	fmt.Fprintf(tw, "Status:\t%s\n", book.Status.Label())
	if book.ISBN != nil {
		fmt.Fprintf(tw, "ISBN:\t%s\n", *book.ISBN)
	}
	if book.Publisher != nil {
		fmt.Fprintf(tw, "Publisher:\t%s\n", *book.Publisher)
	}
	if book.PublicationYear != nil {
		fmt.Fprintf(tw, "Year:\t%d\n", *book.PublicationYear)
	}
	if book.Pages != nil {
		fmt.Fprintf(tw, "Pages:\t%d\n", *book.Pages)
	}
	fmt.Fprintf(tw, "Added:\t%s\n", dates.Format(book.AddedAt))
	tw.Flush()

	fmt.Fprintln(w, "\nReading sessions:")
	printSessions(w, book.Sessions)

	fmt.Fprintln(w, "\nNotes:")
	printNotes(w, book.Notes)
}

func printSessions(w io.Writer, sessions []entities.ReadingSession) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No reading sessions yet.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTARTED\tENDED\tNOTES")
	for _, session := range sessions {
		ended := "in progress"
		if end, ok := session.Ended(); ok {
			ended = dates.Format(end)
		}
		notes := ""
		if session.Notes != nil {
			notes = *session.Notes
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", session.ID, dates.Format(session.Started()), ended, notes)
	}
	tw.Flush()
}

func printNotes(w io.Writer, notes []entities.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes yet.")
		return
	}

	for _, note := range notes {
		header := fmt.Sprintf("[%d] %s", note.ID, note.Type.Label())
		if note.Title != nil {
			header += ": " + *note.Title
		}
		if note.PageNumber != nil {
			header += fmt.Sprintf(" (p. %d)", *note.PageNumber)
		}
		fmt.Fprintln(w, header)
		fmt.Fprintf(w, "    %s\n", note.Content)
	}
}
