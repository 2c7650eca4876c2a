// Command generate_demo creates a demo library with public domain books, reading
// sessions and notes.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/grantgco/reading-library/internal/clock"
	"github.com/grantgco/reading-library/internal/database"
	"github.com/grantgco/reading-library/internal/dates"
	"github.com/grantgco/reading-library/internal/entities"
	"github.com/grantgco/reading-library/internal/library"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo library at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	service := library.NewService(db.Books, db.Sessions, db.Notes, dates.NewInterpreter(clock.NewSystem(nil)), nil)

	for _, demo := range demoBooks() {
		book, err := service.AddBook(demo.Book)
		if err != nil {
			log.Printf("Failed to add book %s: %v", demo.Book.Title, err)
			continue
		}

		for _, session := range demo.Sessions {
			if _, err := service.StartSession(book.ID, session.Start); err != nil {
				log.Printf("Failed to start session for %s: %v", book.Title, err)
				continue
			}
			if session.End == "" {
				continue
			}
			if _, _, err := service.EndSession(book.ID, library.EndSessionRequest{
				DateText:  session.End,
				Notes:     session.Notes,
				Completed: session.Completed,
			}); err != nil {
				log.Printf("Failed to end session for %s: %v", book.Title, err)
			}
		}

		for _, note := range demo.Notes {
			note.BookID = book.ID
			if _, err := service.AddNote(note); err != nil {
				log.Printf("Failed to add note to %s: %v", book.Title, err)
			}
		}

		log.Printf("Saved: %s by %s (%d sessions, %d notes)", book.Title, book.Author, len(demo.Sessions), len(demo.Notes))
	}

	log.Println("Demo library generated successfully!")
}

// demoSession holds date text the same way a user would enter it.
type demoSession struct {
	Start     string
	End       string
	Notes     string
	Completed bool
}

type demoBook struct {
	Book     library.NewBook
	Sessions []demoSession
	Notes    []library.NewNote
}

// daysAgo returns an ISO date n days before today.
func daysAgo(n int) string {
	return dates.FormatISO(time.Now().AddDate(0, 0, -n))
}

func ptr[T any](v T) *T {
	return &v
}

func demoBooks() []demoBook {
	return []demoBook{
		// Marcus Aurelius - Meditations (Public Domain)
		{
			Book: library.NewBook{
				Title:           "Meditations",
				Author:          "Marcus Aurelius",
				Type:            entities.BookTypePhysical,
				PublicationYear: ptr(180),
				Pages:           ptr(254),
			},
			Sessions: []demoSession{
				{Start: daysAgo(60), End: daysAgo(45), Notes: "Books one to six", Completed: false},
				{Start: daysAgo(20), End: daysAgo(3), Notes: "Finished on the train", Completed: true},
			},
			Notes: []library.NewNote{
				{Type: entities.NoteTypeQuote, Content: "You have power over your mind - not outside events. Realize this, and you will find strength.", PageNumber: ptr(12)},
				{Type: entities.NoteTypeQuote, Content: "The happiness of your life depends upon the quality of your thoughts.", PageNumber: ptr(41)},
				{Type: entities.NoteTypeReview, Title: ptr("Worth rereading"), Content: "Short entries, easy to dip into. Book four is the best."},
			},
		},

		// Seneca - Letters from a Stoic (Public Domain)
		{
			Book: library.NewBook{
				Title:           "Letters from a Stoic",
				Author:          "Seneca",
				Type:            entities.BookTypeEbook,
				PublicationYear: ptr(65),
			},
			Sessions: []demoSession{
				{Start: daysAgo(5)},
			},
			Notes: []library.NewNote{
				{Type: entities.NoteTypeHighlight, Content: "We suffer more often in imagination than in reality.", PageNumber: ptr(7)},
				{Type: entities.NoteTypeThought, Content: "Pairs well with Meditations; compare letter 13 with book two."},
			},
		},

		// Charles Darwin - On the Origin of Species (Public Domain)
		{
			Book: library.NewBook{
				Title:           "On the Origin of Species",
				Author:          "Charles Darwin",
				Type:            entities.BookTypeAudiobook,
				PublicationYear: ptr(1859),
			},
			Sessions: []demoSession{
				{Start: daysAgo(90), End: daysAgo(70), Notes: "Too dense as an audiobook"},
			},
		},

		// Jane Austen - Pride and Prejudice (Public Domain)
		{
			Book: library.NewBook{
				Title:           "Pride and Prejudice",
				Author:          "Jane Austen",
				PublicationYear: ptr(1813),
				Pages:           ptr(432),
			},
		},

		// Jane Austen - Emma (Public Domain)
		{
			Book: library.NewBook{
				Title:           "Emma",
				Author:          "Jane Austen",
				Status:          entities.StatusAbandoned,
				PublicationYear: ptr(1815),
			},
			Notes: []library.NewNote{
				{Type: entities.NoteTypeThought, Content: "Put down after volume one. Try again in winter."},
			},
		},
	}
}
