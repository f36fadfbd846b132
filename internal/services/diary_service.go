package services

import (
	"errors"
	"fmt"
	"time"

	"heirloom/internal/models"
	"heirloom/internal/repositories"

	"gorm.io/gorm"
)

// ScratchOutcome is the typed result of a scratch attempt. Outwardly a
// forbidden scratch is indistinguishable from a successful one; the
// distinction exists for tests and logging.
type ScratchOutcome int

const (
	ScratchApplied ScratchOutcome = iota
	ScratchAlreadyDone
	ScratchNotFound
	ScratchForbidden
)

// DiaryView is everything the diary page needs for one selected date.
// PreviousDate and NextDate are nil at the edges of the diary year.
type DiaryView struct {
	SelectedDate time.Time
	Entries      []models.Entry
	PreviousDate *time.Time
	NextDate     *time.Time
}

// DiaryService handles business logic for date navigation, entry creation
// and scratching. It is bound to a single diary year; navigation never
// leaves the [Jan 1, Dec 31] window of that year.
type DiaryService struct {
	entryRepo repositories.EntryRepository
	userRepo  repositories.UserRepository
	minDate   time.Time
	maxDate   time.Time
}

// NewDiaryService creates a new DiaryService bound to the given diary year.
func NewDiaryService(entryRepo repositories.EntryRepository, userRepo repositories.UserRepository, year int) *DiaryService {
	return &DiaryService{
		entryRepo: entryRepo,
		userRepo:  userRepo,
		minDate:   time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		maxDate:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// View fetches the entries for the selected date in authoring order, along
// with the clamped previous/next navigation targets.
func (s *DiaryService) View(date time.Time) (*DiaryView, error) {
	date = NormalizeDate(date)

	entries, err := s.entryRepo.GetByDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to load diary for %s: %w", date.Format(DateLayout), err)
	}

	prev, next := AdjacentDates(date, s.minDate, s.maxDate)
	return &DiaryView{
		SelectedDate: date,
		Entries:      entries,
		PreviousDate: prev,
		NextDate:     next,
	}, nil
}

// MonthView lists a whole month of the diary year, newest date first.
func (s *DiaryService) MonthView(month time.Month) ([]models.Entry, error) {
	from := time.Date(s.minDate.Year(), month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	entries, err := s.entryRepo.GetByDateRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load diary for %s: %w", month, err)
	}
	return entries, nil
}

// CreateEntry inserts a new unscratched entry owned by the given user.
// Entries accumulate; an existing entry for the same date is never touched.
func (s *DiaryService) CreateEntry(userID, content string, date time.Time) (*models.Entry, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, fmt.Errorf("failed to resolve entry owner: %w", err)
	}

	entry := &models.Entry{
		Content:   content,
		Date:      NormalizeDate(date),
		Scratched: false,
		UserID:    userID,
	}
	if err := s.entryRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, nil
}

// ScratchEntry applies the one-way scratch to an entry. The returned date is
// the entry's own date (the view to land on afterwards) whenever the entry
// exists, regardless of outcome. Only the owner can scratch, and scratching
// an already-scratched entry is a no-op.
func (s *DiaryService) ScratchEntry(entryID uint, userID string) (ScratchOutcome, time.Time, error) {
	entry, err := s.entryRepo.GetByID(entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScratchNotFound, time.Time{}, nil
		}
		return ScratchNotFound, time.Time{}, fmt.Errorf("failed to load entry %d: %w", entryID, err)
	}

	if entry.UserID != userID {
		return ScratchForbidden, entry.Date, nil
	}
	if entry.Scratched {
		return ScratchAlreadyDone, entry.Date, nil
	}

	if err := s.entryRepo.SetScratched(entryID); err != nil {
		return ScratchApplied, entry.Date, fmt.Errorf("failed to scratch entry %d: %w", entryID, err)
	}
	return ScratchApplied, entry.Date, nil
}
