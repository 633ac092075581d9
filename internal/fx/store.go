package fx

import (
	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
	"homeledger/internal/uuid"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRateStore stores rate observations in the database. It satisfies
// the RateStore interface consumed by the Resolver.
type GormRateStore struct {
	db *gorm.DB
}

// NewGormRateStore creates a rate store backed by the given database.
func NewGormRateStore(db *gorm.DB) *GormRateStore {
	return &GormRateStore{db: db}
}

// FindLatestOnOrBefore returns the observation for (from, to) with the
// greatest effective_date <= date, or (nil, nil) when none exists.
//
// The upsert key keeps at most one observation per pair per day, but the
// ordering still breaks any residual same-date duplicates by created_at
// and then id (UUIDv7, creation-ordered), so the most recently recorded
// observation always wins deterministically.
func (s *GormRateStore) FindLatestOnOrBefore(from, to, date string) (*models.FXRate, error) {
	var rate models.FXRate
	err := s.db.
		Where("from_code = ? AND to_code = ? AND effective_date <= ?", from, to, date).
		Order("effective_date DESC, created_at DESC, id DESC").
		First(&rate).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

// Upsert records an observation, overwriting any existing one with the
// same (from, to, effective_date) key. The conflict clause makes the
// insert-or-update atomic under concurrent rate refreshes.
func (s *GormRateStore) Upsert(from, to string, rate float64, effectiveDate, source, note string) (*models.FXRate, error) {
	row := &models.FXRate{
		Base:          models.Base{ID: uuid.New()},
		FromCode:      from,
		ToCode:        to,
		Rate:          rate,
		EffectiveDate: effectiveDate,
		Source:        source,
		Note:          note,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "from_code"}, {Name: "to_code"}, {Name: "effective_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rate":       rate,
			"source":     source,
			"note":       note,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(row).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Re-read so callers see the surviving row, not the candidate insert.
	var saved models.FXRate
	if err := s.db.
		Where("from_code = ? AND to_code = ? AND effective_date = ?", from, to, effectiveDate).
		First(&saved).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &saved, nil
}

// List returns observations, optionally filtered to a pair, newest first.
func (s *GormRateStore) List(from, to string, limit, offset int) ([]models.FXRate, int64, error) {
	base := s.db.Model(&models.FXRate{})
	if from != "" {
		base = base.Where("from_code = ?", from)
	}
	if to != "" {
		base = base.Where("to_code = ?", to)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rates []models.FXRate
	if err := base.
		Order("effective_date DESC, from_code ASC, to_code ASC").
		Limit(limit).Offset(offset).
		Find(&rates).Error; err != nil {
		return nil, 0, err
	}
	return rates, total, nil
}
