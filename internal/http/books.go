package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/grantgco/reading-library/internal/entities"
	"github.com/grantgco/reading-library/internal/library"
)

type BooksController struct {
	service *library.Service
	logger  *zap.Logger
}

func NewBooksController(service *library.Service, logger *zap.Logger) *BooksController {
	return &BooksController{
		service: service,
		logger:  logger,
	}
}

// BookRequest is the body of POST /api/books. Type and status accept both
// codes ("ebook") and labels ("E-book").
type BookRequest struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Type            string  `json:"type"`
	Status          string  `json:"status"`
	ISBN            *string `json:"isbn"`
	Publisher       *string `json:"publisher"`
	PublicationYear *int    `json:"publication_year"`
	Pages           *int    `json:"pages"`
}

func (r BookRequest) toNewBook() library.NewBook {
	return library.NewBook{
		Title:           r.Title,
		Author:          r.Author,
		Type:            parseBookType(r.Type),
		Status:          parseStatus(r.Status),
		ISBN:            r.ISBN,
		Publisher:       r.Publisher,
		PublicationYear: r.PublicationYear,
		Pages:           r.Pages,
	}
}

// StatusRequest is the body of PATCH /api/books/:id/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// BookDetailResponse adds display labels and the open session to a book.
type BookDetailResponse struct {
	*entities.Book
	TypeLabel   string                   `json:"type_label"`
	StatusLabel string                   `json:"status_label"`
	OpenSession *entities.ReadingSession `json:"open_session,omitempty"`
}

// ListBooks handles GET /api/books. ?author= filters by exact author, ?q=
// searches titles and authors.
func (bc *BooksController) ListBooks(c *gin.Context) {
	var (
		books []entities.Book
		err   error
	)

	switch {
	case c.Query("author") != "":
		books, err = bc.service.BooksByAuthor(c.Query("author"))
	case c.Query("q") != "":
		books, err = bc.service.SearchBooks(c.Query("q"))
	default:
		books, err = bc.service.ListBooks()
	}
	if err != nil {
		respondInternalError(c, bc.logger, err, "list books")
		return
	}

	respondList(c, books)
}

// CreateBook handles POST /api/books.
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req BookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := bc.service.AddBook(req.toNewBook())
	if err != nil {
		respondLibraryError(c, bc.logger, err, "book", "create book")
		return
	}

	respondCreated(c, book)
}

// GetBook handles GET /api/books/:id, including sessions and notes.
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.service.GetBookDetail(id)
	if err != nil {
		respondLibraryError(c, bc.logger, err, "book", "get book")
		return
	}

	response := BookDetailResponse{
		Book:        book,
		TypeLabel:   book.Type.Label(),
		StatusLabel: book.Status.Label(),
	}
	for i := range book.Sessions {
		if book.Sessions[i].IsOpen() {
			response.OpenSession = &book.Sessions[i]
			break
		}
	}

	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles PATCH /api/books/:id/status.
func (bc *BooksController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := bc.service.UpdateBookStatus(id, parseStatus(req.Status)); err != nil {
		respondLibraryError(c, bc.logger, err, "book", "update status")
		return
	}

	book, err := bc.service.GetBook(id)
	if err != nil {
		respondLibraryError(c, bc.logger, err, "book", "update status")
		return
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBook handles DELETE /api/books/:id.
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := bc.service.DeleteBook(id)
	if err != nil {
		respondInternalError(c, bc.logger, err, "delete book")
		return
	}
	if !deleted {
		respondNotFound(c, "book")
		return
	}

	respondSuccess(c, "book deleted")
}

// ListAuthors handles GET /api/authors. ?prefix= returns suggestions instead
// of every author.
func (bc *BooksController) ListAuthors(c *gin.Context) {
	var (
		authors []string
		err     error
	)

	if prefix, ok := c.GetQuery("prefix"); ok {
		authors, err = bc.service.SuggestAuthors(prefix)
	} else {
		authors, err = bc.service.ListUniqueAuthors()
	}
	if err != nil {
		respondInternalError(c, bc.logger, err, "list authors")
		return
	}

	respondList(c, authors)
}

// parseBookType accepts codes and labels. Unknown text is passed through so
// validation reports it.
func parseBookType(s string) entities.BookType {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	if t, ok := entities.ParseBookType(s); ok {
		return t
	}
	return entities.BookType(s)
}

func parseStatus(s string) entities.ReadingStatus {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	if status, ok := entities.ParseReadingStatus(s); ok {
		return status
	}
	return entities.ReadingStatus(s)
}

func parseNoteType(s string) entities.NoteType {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	if t, ok := entities.ParseNoteType(s); ok {
		return t
	}
	return entities.NoteType(s)
}
