package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"homeledger/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCurrency ensures a currency with the given code exists.
func CreateTestCurrency(t *testing.T, db *gorm.DB, code string) *models.Currency {
	t.Helper()

	currency := &models.Currency{
		Code:          code,
		Name:          "Test Currency " + code,
		DecimalDigits: 2,
		Enabled:       true,
	}
	if err := db.Where(models.Currency{Code: code}).FirstOrCreate(currency).Error; err != nil {
		t.Fatalf("failed to create test currency %s: %v", code, err)
	}
	return currency
}

// CreateTestAccountType ensures an account type with the given code exists.
func CreateTestAccountType(t *testing.T, db *gorm.DB, code string) *models.AccountType {
	t.Helper()

	accountType := &models.AccountType{
		Code:    code,
		Name:    "Test Type " + code,
		Nature:  models.NatureAsset,
		Enabled: true,
	}
	if err := db.Where(models.AccountType{Code: code}).FirstOrCreate(accountType).Error; err != nil {
		t.Fatalf("failed to create test account type %s: %v", code, err)
	}
	return accountType
}

// CreateTestAccount creates an account in the given currency.
func CreateTestAccount(t *testing.T, db *gorm.DB, currencyCode string) *models.Account {
	t.Helper()

	CreateTestCurrency(t, db, currencyCode)
	CreateTestAccountType(t, db, "checking")

	account := &models.Account{
		Name:         fmt.Sprintf("Test Account %d", nextID()),
		TypeCode:     "checking",
		CurrencyCode: currencyCode,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestGroup creates a category group in the given currency.
func CreateTestGroup(t *testing.T, db *gorm.DB, currencyCode string) *models.CategoryGroup {
	t.Helper()

	CreateTestCurrency(t, db, currencyCode)

	group := &models.CategoryGroup{
		Name:         fmt.Sprintf("Test Group %d", nextID()),
		CurrencyCode: currencyCode,
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateTestCategory creates a root category of the given type in the group.
func CreateTestCategory(t *testing.T, db *gorm.DB, groupID string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		GroupID: groupID,
		Depth:   1,
		Name:    fmt.Sprintf("Test Category %d", nextID()),
		Type:    categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestChildCategory creates a category under the given parent,
// inheriting its group and type.
func CreateTestChildCategory(t *testing.T, db *gorm.DB, parent *models.Category) *models.Category {
	t.Helper()

	category := &models.Category{
		GroupID:  parent.GroupID,
		ParentID: &parent.ID,
		Depth:    parent.Depth + 1,
		Name:     fmt.Sprintf("Test Child Category %d", nextID()),
		Type:     parent.Type,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test child category: %v", err)
	}
	return category
}

// CreateTestRate records a rate observation for the pair on the given date.
func CreateTestRate(t *testing.T, db *gorm.DB, from, to string, rate float64, effectiveDate string) *models.FXRate {
	t.Helper()

	fxRate := &models.FXRate{
		FromCode:      from,
		ToCode:        to,
		Rate:          rate,
		EffectiveDate: effectiveDate,
		Source:        "manual",
	}
	if err := db.Create(fxRate).Error; err != nil {
		t.Fatalf("failed to create test rate %s/%s: %v", from, to, err)
	}
	return fxRate
}
