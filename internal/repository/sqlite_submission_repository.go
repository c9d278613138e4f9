package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/givers/contactform/internal/model"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// submissionRow is the gorm model for the submissions table.
type submissionRow struct {
	ID          uint   `gorm:"primaryKey"`
	SubmittedAt string `gorm:"column:submitted_at;not null"`
	Name        string `gorm:"not null"`
	Email       string `gorm:"index;not null"`
	Message     string `gorm:"type:text;not null"`
}

func (submissionRow) TableName() string {
	return "submissions"
}

// SQLiteSubmissionRepository stores submissions in an embedded SQLite file.
type SQLiteSubmissionRepository struct {
	db *gorm.DB
}

// Ensure SQLiteSubmissionRepository implements Store at compile time.
var _ Store = (*SQLiteSubmissionRepository)(nil)

// OpenSQLiteSubmissionRepository opens (creating if needed) the database at
// path and migrates the submissions table.
func OpenSQLiteSubmissionRepository(path string) (*SQLiteSubmissionRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite store: mkdir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite store: %w", err)
	}
	// One writer at a time; SQLite serializes writes anyway.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&submissionRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite store: migrate: %w", err)
	}
	return &SQLiteSubmissionRepository{db: db}, nil
}

func (r *SQLiteSubmissionRepository) Append(ctx context.Context, sub *model.Submission) error {
	row := submissionRow{
		SubmittedAt: sub.Timestamp,
		Name:        sub.Name,
		Email:       sub.Email,
		Message:     sub.Message,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *SQLiteSubmissionRepository) ListAll(ctx context.Context) ([]*model.Submission, error) {
	var rows []submissionRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	subs := make([]*model.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, &model.Submission{
			Timestamp: row.SubmittedAt,
			Name:      row.Name,
			Email:     row.Email,
			Message:   row.Message,
		})
	}
	return subs, nil
}

func (r *SQLiteSubmissionRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *SQLiteSubmissionRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
