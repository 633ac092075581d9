package models

// Account represents a financial account. The currency is fixed at
// creation and never changes; archived accounts are read-only for new
// postings and transfers.
type Account struct {
	Base
	Name                string  `gorm:"not null;uniqueIndex" json:"name"`
	TypeCode            string  `gorm:"not null" json:"type_code"`
	CurrencyCode        string  `gorm:"size:3;not null" json:"currency_code"`
	OpeningBalanceMinor int64   `gorm:"type:bigint;not null;default:0" json:"opening_balance_minor"`
	OpeningDate         string  `gorm:"type:date" json:"opening_date,omitempty"`
	InstitutionID       *string `gorm:"type:uuid" json:"institution_id,omitempty"`
	Archived            bool    `gorm:"not null;default:false" json:"archived"`
	Notes               string  `json:"notes,omitempty"`

	// Relationships
	Type        AccountType   `gorm:"foreignKey:TypeCode;references:Code" json:"-"`
	Currency    Currency      `gorm:"foreignKey:CurrencyCode;references:Code" json:"-"`
	Institution *Institution  `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
	Cards       []PaymentCard `gorm:"foreignKey:AccountID" json:"cards,omitempty"`
}

// PaymentCard is a card attached to an account.
type PaymentCard struct {
	Base
	AccountID    string `gorm:"type:uuid;not null;index" json:"account_id"`
	CardTypeCode string `json:"card_type_code,omitempty"`
	Network      string `json:"network,omitempty"`
	NameOnCard   string `json:"name_on_card,omitempty"`
	ExpiryMonth  int    `json:"expiry_month,omitempty"`
	ExpiryYear   int    `json:"expiry_year,omitempty"`
	PanLast4     string `gorm:"size:4" json:"pan_last4,omitempty"`
	Archived     bool   `gorm:"not null;default:false" json:"archived"`
}
