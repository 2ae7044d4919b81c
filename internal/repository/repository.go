package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction runs fn against a repository bound to a single database transaction.
// Returning an error from fn rolls back every write made through the bound repository.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Page is a limit/offset window over a listing.
type Page struct {
	Limit  int
	Offset int
}

// NewPage converts a 1-based page number into a window of size perPage.
func NewPage(page, perPage int) Page {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	return Page{Limit: perPage, Offset: (page - 1) * perPage}
}

func likePattern(term string) string {
	return "%" + term + "%"
}
