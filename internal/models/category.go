package models

// CategoryType classifies a category subtree. The type is fixed at the
// root category and propagates to every descendant.
type CategoryType string

const (
	CategoryTypeExpense         CategoryType = "expense"
	CategoryTypeIncome          CategoryType = "income"
	CategoryTypeSaving          CategoryType = "saving"
	CategoryTypeLiability       CategoryType = "liability"
	CategoryTypeTransferSpecial CategoryType = "transfer_special"
)

// CategoryGroup is a currency-scoped container of categories, typically
// representing a country or region. A category's effective currency is the
// group's currency unless the category carries its own override.
type CategoryGroup struct {
	Base
	Name         string `gorm:"not null;uniqueIndex" json:"name"`
	CountryCode  string `gorm:"size:2" json:"country_code,omitempty"`
	CurrencyCode string `gorm:"size:3;not null" json:"currency_code"`
	Archived     bool   `gorm:"not null;default:false" json:"archived"`

	Currency Currency `gorm:"foreignKey:CurrencyCode;references:Code" json:"-"`
}

// Category belongs to exactly one group and optionally to a parent
// category in the same group, forming a tree. Depth is 1 for roots.
type Category struct {
	Base
	GroupID      string       `gorm:"type:uuid;not null;index" json:"group_id"`
	ParentID     *string      `gorm:"type:uuid" json:"parent_id,omitempty"`
	Depth        int          `gorm:"not null" json:"depth"`
	Name         string       `gorm:"not null" json:"name"`
	Type         CategoryType `gorm:"not null" json:"type"`
	CurrencyCode *string      `gorm:"size:3" json:"currency_code,omitempty"` // overrides the group currency when set
	Archived     bool         `gorm:"not null;default:false" json:"archived"`
	Notes        string       `json:"notes,omitempty"`

	// Relationships
	Group    CategoryGroup `gorm:"foreignKey:GroupID" json:"-"`
	Parent   *Category     `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category    `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}
