package models

// FXRate is a directed exchange rate observation: multiply an amount in
// FromCode by Rate to get the amount in ToCode on EffectiveDate.
//
// Observations are keyed on (from_code, to_code, effective_date): writing
// a rate for an existing key overwrites the previous observation instead
// of duplicating it.
type FXRate struct {
	Base
	FromCode      string  `gorm:"size:3;not null;uniqueIndex:idx_fx_pair_date" json:"from_code"`
	ToCode        string  `gorm:"size:3;not null;uniqueIndex:idx_fx_pair_date" json:"to_code"`
	Rate          float64 `gorm:"not null" json:"rate"`
	EffectiveDate string  `gorm:"type:date;not null;uniqueIndex:idx_fx_pair_date" json:"effective_date"`
	Source        string  `gorm:"not null;default:'manual'" json:"source"` // manual|import|provider
	Note          string  `json:"note,omitempty"`
}
