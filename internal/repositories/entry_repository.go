package repositories

import (
	"time"

	"heirloom/internal/models"
)

// EntryRepository defines the interface for diary entry data access.
// Entries are insert-only; SetScratched is the single permitted mutation.
type EntryRepository interface {
	Create(entry *models.Entry) error
	GetByID(id uint) (*models.Entry, error)
	GetByDate(date time.Time) ([]models.Entry, error)
	GetByDateRange(from, to time.Time) ([]models.Entry, error)
	SetScratched(id uint) error
}
