package repositories

import (
	"fmt"
	"time"

	"heirloom/internal/models"

	"gorm.io/gorm"
)

// GORMEntryRepository is a GORM implementation of EntryRepository.
type GORMEntryRepository struct {
	db *gorm.DB
}

// NewGORMEntryRepository creates a new instance of GORMEntryRepository.
func NewGORMEntryRepository(db *gorm.DB) *GORMEntryRepository {
	return &GORMEntryRepository{
		db: db,
	}
}

// Create inserts a new entry in the database.
func (r *GORMEntryRepository) Create(entry *models.Entry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// GetByID retrieves a single entry by its ID from the database.
func (r *GORMEntryRepository) GetByID(id uint) (*models.Entry, error) {
	var entry models.Entry
	if err := r.db.First(&entry, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("entry with ID %d not found: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get entry by ID %d: %w", id, err)
	}
	return &entry, nil
}

// GetByDate retrieves all entries for one calendar date, oldest first.
// Ordering by ID preserves the authoring order within a day.
func (r *GORMEntryRepository) GetByDate(date time.Time) ([]models.Entry, error) {
	var entries []models.Entry
	if err := r.db.Where("date = ?", date).Order("id asc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get entries for date %s: %w", date.Format("2006-01-02"), err)
	}
	return entries, nil
}

// GetByDateRange retrieves all entries with from <= Date < to, newest date
// first and authoring order within each date.
func (r *GORMEntryRepository) GetByDateRange(from, to time.Time) ([]models.Entry, error) {
	var entries []models.Entry
	if err := r.db.Where("date >= ? AND date < ?", from, to).Order("date desc, id asc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get entries between %s and %s: %w",
			from.Format("2006-01-02"), to.Format("2006-01-02"), err)
	}
	return entries, nil
}

// SetScratched marks an entry as scratched. The flag only ever moves to
// true, so applying it twice is harmless.
func (r *GORMEntryRepository) SetScratched(id uint) error {
	res := r.db.Model(&models.Entry{}).Where("id = ?", id).Update("scratched", true)
	if res.Error != nil {
		return fmt.Errorf("failed to scratch entry %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("entry with ID %d not found for scratch: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
