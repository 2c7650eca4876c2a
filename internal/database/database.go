package database

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/grantgco/reading-library/internal/database/books"
	"github.com/grantgco/reading-library/internal/database/notes"
	"github.com/grantgco/reading-library/internal/database/sessions"
	"github.com/grantgco/reading-library/internal/entities"
)

type Database struct {
	DB       *gorm.DB
	Books    *books.Repository
	Sessions *sessions.Repository
	Notes    *notes.Repository
}

type options struct {
	logLevel logger.LogLevel
	nowFunc  func() time.Time
}

type Option func(*options)

// WithSQLLogging logs every statement through gorm's default logger.
func WithSQLLogging(enabled bool) Option {
	return func(o *options) {
		if enabled {
			o.logLevel = logger.Info
		}
	}
}

// WithNowFunc sets the time source for created/updated timestamps.
func WithNowFunc(now func() time.Time) Option {
	return func(o *options) {
		o.nowFunc = now
	}
}

func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	o := options{logLevel: logger.Silent}
	for _, opt := range opts {
		opt(&o)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(o.logLevel),
	}
	if o.nowFunc != nil {
		gormConfig.NowFunc = o.nowFunc
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.ReadingSession{},
		&entities.Note{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{
		DB:       db,
		Books:    books.NewRepository(db),
		Sessions: sessions.NewRepository(db),
		Notes:    notes.NewRepository(db),
	}, nil
}

// dsn enables foreign keys (needed for ON DELETE CASCADE) and waits on a locked
// file instead of failing immediately.
func dsn(dbPath string) string {
	return dbPath + "?_foreign_keys=on&_busy_timeout=5000"
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Stats returns row counts for the health endpoint and CLI summaries.
func (d *Database) Stats() (totalBooks, totalSessions, totalNotes int64, err error) {
	if err = d.DB.Model(&entities.Book{}).Count(&totalBooks).Error; err != nil {
		return
	}
	if err = d.DB.Model(&entities.ReadingSession{}).Count(&totalSessions).Error; err != nil {
		return
	}
	err = d.DB.Model(&entities.Note{}).Count(&totalNotes).Error
	return
}
