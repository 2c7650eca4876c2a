package notes

import (
	"gorm.io/gorm"

	"github.com/grantgco/reading-library/internal/apperr"
	"github.com/grantgco/reading-library/internal/entities"
)

// Repository handles note database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new notes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateNote attaches a note to an existing book.
func (r *Repository) CreateNote(note *entities.Note) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Book{}).Where("id = ?", note.BookID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("book", note.BookID)
		}
		return tx.Create(note).Error
	})
}

// GetNotesForBook returns a book's notes, newest first.
func (r *Repository) GetNotesForBook(bookID uint) ([]entities.Note, error) {
	var notes []entities.Note
	err := r.db.Where("book_id = ?", bookID).Order("created_at DESC, id DESC").Find(&notes).Error
	return notes, err
}

func (r *Repository) DeleteNote(id uint) error {
	result := r.db.Delete(&entities.Note{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("note", id)
	}
	return nil
}
