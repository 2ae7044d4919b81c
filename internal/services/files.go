package services

import (
	"fmt"
	"log"

	"konnect/internal/storage"
)

// FileStore persists uploaded files
type FileStore interface {
	Save(category storage.Category, upload storage.Upload) (string, error)
	Delete(rel string) error
}

func saveUpload(files FileStore, category storage.Category, field string, upload *storage.Upload) (*string, error) {
	if upload == nil {
		return nil, nil
	}
	rel, err := files.Save(category, *upload)
	if err != nil {
		if storage.IsValidation(err) {
			return nil, invalid(field, err.Error())
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &rel, nil
}

// discardFile removes a file that is no longer referenced. Failures only leave an orphan behind.
func discardFile(files FileStore, rel *string) {
	if rel == nil || *rel == "" {
		return
	}
	if err := files.Delete(*rel); err != nil {
		log.Printf("Warning: failed to delete file %s: %v", *rel, err)
	}
}
