package services

import "konnect/internal/repository"

// Page sizes used by the listing screens
const (
	CampaignsPerPage    = 9
	CreatorsPerPage     = 10
	ConversationLimit   = 50
	AdminListPerPage    = 20
	defaultAdminLogSize = 50
)

// Paged is one page of a listing plus the size of the whole filtered result.
type Paged[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

func newPaged[T any](items []T, total int64, page, perPage int) *Paged[T] {
	if page < 1 {
		page = 1
	}
	if items == nil {
		items = []T{}
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return &Paged[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: pages,
	}
}

func pageWindow(page, perPage int) repository.Page {
	return repository.NewPage(page, perPage)
}
