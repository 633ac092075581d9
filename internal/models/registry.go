package models

// Currency is a registry entry for an ISO 4217 currency. A currency is
// immutable once any posting references it; only the enabled flag may change.
type Currency struct {
	Code          string `gorm:"primaryKey;size:3" json:"code"`
	Name          string `gorm:"not null" json:"name"`
	DecimalDigits int32  `gorm:"not null;default:2" json:"decimal_digits"`
	Symbol        string `json:"symbol,omitempty"`
	Enabled       bool   `gorm:"not null;default:true" json:"enabled"`
}

// AccountTypeNature classifies an account type on the balance sheet.
type AccountTypeNature string

const (
	NatureAsset     AccountTypeNature = "asset"
	NatureLiability AccountTypeNature = "liability"
	NatureOther     AccountTypeNature = "other"
)

// AccountType is a registry entry for a kind of account (checking, savings,
// credit card, wallet...).
type AccountType struct {
	Code    string            `gorm:"primaryKey" json:"code"`
	Name    string            `gorm:"not null" json:"name"`
	Nature  AccountTypeNature `gorm:"not null" json:"nature"`
	Enabled bool              `gorm:"not null;default:true" json:"enabled"`
}

// Institution is a registry entry for a bank or financial institution.
type Institution struct {
	Base
	Name    string `gorm:"not null;uniqueIndex" json:"name"`
	Country string `json:"country,omitempty"`
	Abbr    string `json:"abbr,omitempty"`
	Website string `json:"website,omitempty"`
	Enabled bool   `gorm:"not null;default:true" json:"enabled"`
}

// CardType is a registry entry for a card product, e.g. "visa.debit.std".
type CardType struct {
	Code     string `gorm:"primaryKey" json:"code"`
	Name     string `gorm:"not null" json:"name"`
	Network  string `gorm:"not null" json:"network"` // visa|mastercard|amex|rupay|other
	Category string `json:"category,omitempty"`      // debit|credit|prepaid
	Enabled  bool   `gorm:"not null;default:true" json:"enabled"`
}
