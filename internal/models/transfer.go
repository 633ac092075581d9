package models

// Transfer is an immutable record of a monetary movement between two
// accounts, possibly crossing currencies. Unlike a Posting, the resolved
// rate and its provenance are first-class facts of the transfer and are
// persisted on the record so the conversion is replayable later.
type Transfer struct {
	Base
	Date             string        `gorm:"type:date;not null;index" json:"date"`
	FromAccountID    string        `gorm:"type:uuid;not null;index" json:"from_account_id"`
	ToAccountID      string        `gorm:"type:uuid;not null;index" json:"to_account_id"`
	AmountFromMinor  int64         `gorm:"type:bigint;not null" json:"amount_from_minor"`
	CurrencyFromCode string        `gorm:"size:3;not null" json:"currency_from_code"`
	AmountToMinor    int64         `gorm:"type:bigint;not null" json:"amount_to_minor"`
	CurrencyToCode   string        `gorm:"size:3;not null" json:"currency_to_code"`
	FXRateUsed       float64       `gorm:"not null" json:"fx_rate_used"`
	FXSource         string        `gorm:"not null" json:"fx_source"`
	Note             string        `json:"note,omitempty"`
	Status           PostingStatus `gorm:"not null;default:'posted'" json:"status"`

	// Relationships
	FromAccount Account `gorm:"foreignKey:FromAccountID" json:"-"`
	ToAccount   Account `gorm:"foreignKey:ToAccountID" json:"-"`
}
