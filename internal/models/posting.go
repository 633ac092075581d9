package models

// PostingType is the direction of an account-to-category posting.
type PostingType string

const (
	PostingTypeExpense PostingType = "expense"
	PostingTypeIncome  PostingType = "income"
)

// PostingStatus is the lifecycle state of a posting or transfer.
type PostingStatus string

const (
	StatusPosted  PostingStatus = "posted"
	StatusPlanned PostingStatus = "planned"
)

// Posting is an immutable record of an account-to-category monetary
// event. AmountMinor is in the account's currency; CategoryAmountMinor is
// the converted, rounded amount in the category's effective currency.
// When the two currencies match the amounts are equal by construction.
//
// Postings are never amended: they are created once and may only be
// deleted wholesale.
type Posting struct {
	Base
	Date                 string        `gorm:"type:date;not null;index" json:"date"`
	AccountID            string        `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID           string        `gorm:"type:uuid;not null;index" json:"category_id"`
	AmountMinor          int64         `gorm:"type:bigint;not null" json:"amount_minor"`
	CurrencyCode         string        `gorm:"size:3;not null" json:"currency_code"`
	CategoryAmountMinor  int64         `gorm:"type:bigint;not null" json:"category_amount_minor"`
	CategoryCurrencyCode string        `gorm:"size:3;not null" json:"category_currency_code"`
	Type                 PostingType   `gorm:"not null" json:"type"`
	Note                 string        `json:"note,omitempty"`
	Status               PostingStatus `gorm:"not null;default:'posted'" json:"status"`

	// Relationships
	Account  Account  `gorm:"foreignKey:AccountID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}
