package entities

import (
	"time"

	"gorm.io/datatypes"
)

// Book is a single title in the library. Sessions and notes are deleted with it.
type Book struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Title           string           `gorm:"index;size:255;not null" json:"title"`
	Author          string           `gorm:"index;size:255;not null" json:"author"`
	Type            BookType         `gorm:"column:book_type;size:20;not null;default:'physical'" json:"type"`
	Status          ReadingStatus    `gorm:"index;size:20;not null;default:'to_read'" json:"status"`
	ISBN            *string          `gorm:"uniqueIndex;size:20" json:"isbn,omitempty"` // NULL when absent so the index allows many
	Publisher       *string          `gorm:"size:255" json:"publisher,omitempty"`
	PublicationYear *int             `json:"publication_year,omitempty"`
	Pages           *int             `json:"pages,omitempty"`
	Sessions        []ReadingSession `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"sessions,omitempty"`
	Notes           []Note           `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
	AddedAt         time.Time        `gorm:"autoCreateTime" json:"added_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// ReadingSession is one start-to-end reading of a book. A nil EndDate marks the
// open session; a book has at most one.
type ReadingSession struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	BookID    uint            `gorm:"index;not null" json:"book_id"`
	StartDate datatypes.Date  `gorm:"index;not null" json:"start_date"`
	EndDate   *datatypes.Date `gorm:"index" json:"end_date,omitempty"`
	Notes     *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func (ReadingSession) TableName() string {
	return "reading_sessions"
}

// IsOpen reports whether the session is still in progress.
func (s ReadingSession) IsOpen() bool {
	return s.EndDate == nil
}

// Started returns the start date as a time.Time at midnight UTC.
func (s ReadingSession) Started() time.Time {
	return time.Time(s.StartDate)
}

// Ended returns the end date, or false while the session is open.
func (s ReadingSession) Ended() (time.Time, bool) {
	if s.EndDate == nil {
		return time.Time{}, false
	}
	return time.Time(*s.EndDate), true
}

type Note struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookID     uint      `gorm:"index;not null" json:"book_id"`
	Type       NoteType  `gorm:"column:note_type;size:20;not null" json:"type"`
	Title      *string   `gorm:"size:255" json:"title,omitempty"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	PageNumber *int      `json:"page_number,omitempty"` // For highlights/quotes
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Note) TableName() string {
	return "notes"
}

// CalendarDate converts a date to the stored column type, normalised to midnight UTC.
func CalendarDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
