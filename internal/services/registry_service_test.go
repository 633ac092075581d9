package services

import (
	"testing"

	"homeledger/internal/models"
	"homeledger/internal/testutil"
)

func TestCreateCurrency(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRegistryService(db)

		currency, err := svc.CreateCurrency("jpy", "Japanese Yen", 0, "¥")
		testutil.AssertNoError(t, err)

		if currency.Code != "JPY" {
			t.Errorf("expected normalized code JPY, got %s", currency.Code)
		}
		if currency.DecimalDigits != 0 {
			t.Errorf("expected 0 decimal digits, got %d", currency.DecimalDigits)
		}
		if !currency.Enabled {
			t.Error("expected new currency to be enabled")
		}
	})

	t.Run("bad_code_length", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRegistryService(db)

		_, err := svc.CreateCurrency("DIRHAM", "UAE Dirham", 2, "")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("duplicate_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRegistryService(db)

		_, err := svc.CreateCurrency("AED", "UAE Dirham", 2, "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCurrency("aed", "UAE Dirham Again", 2, "")
		testutil.AssertAppError(t, err, "DUPLICATE_CODE")
	})
}

func TestSetCurrencyEnabled(t *testing.T) {
	t.Run("disable_and_reenable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRegistryService(db)
		testutil.CreateTestCurrency(t, db, "AED")

		disabled, err := svc.SetCurrencyEnabled("AED", false)
		testutil.AssertNoError(t, err)
		if disabled.Enabled {
			t.Error("expected the currency to be disabled")
		}

		enabledOnly, err := svc.ListCurrencies(true)
		testutil.AssertNoError(t, err)
		if len(enabledOnly) != 0 {
			t.Errorf("expected no enabled currencies, got %d", len(enabledOnly))
		}

		_, err = svc.SetCurrencyEnabled("AED", true)
		testutil.AssertNoError(t, err)
	})

	t.Run("unknown_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRegistryService(db)

		_, err := svc.SetCurrencyEnabled("XXX", false)
		testutil.AssertAppError(t, err, "CURRENCY_NOT_FOUND")
	})
}

func TestCreateAccountType(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRegistryService(db)

		accountType, err := svc.CreateAccountType("credit_card", "Credit Card", models.NatureLiability)
		testutil.AssertNoError(t, err)

		if accountType.Nature != models.NatureLiability {
			t.Errorf("expected nature liability, got %s", accountType.Nature)
		}
	})

	t.Run("bad_nature", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRegistryService(db)

		_, err := svc.CreateAccountType("checking", "Checking", "equity")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("duplicate_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRegistryService(db)

		_, err := svc.CreateAccountType("checking", "Checking", models.NatureAsset)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateAccountType("checking", "Checking Again", models.NatureAsset)
		testutil.AssertAppError(t, err, "DUPLICATE_CODE")
	})
}

func TestCreateInstitution(t *testing.T) {
	t.Run("success_and_duplicate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRegistryService(db)

		institution, err := svc.CreateInstitution("Emirates NBD", "AE", "ENBD", "https://www.emiratesnbd.com")
		testutil.AssertNoError(t, err)
		if institution.ID == "" {
			t.Fatal("expected a generated institution ID")
		}

		_, err = svc.CreateInstitution("Emirates NBD", "AE", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CODE")
	})
}

func TestCreateCardType(t *testing.T) {
	t.Run("requires_network", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRegistryService(db)

		_, err := svc.CreateCardType("visa.debit.std", "Visa Debit", "", "debit")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRegistryService(db)

		cardType, err := svc.CreateCardType("visa.debit.std", "Visa Debit", "visa", "debit")
		testutil.AssertNoError(t, err)
		if cardType.Category != "debit" {
			t.Errorf("expected category debit, got %s", cardType.Category)
		}
	})
}
