package services

import (
	"testing"

	"homeledger/internal/fx"
	"homeledger/internal/pagination"
	"homeledger/internal/testutil"

	"gorm.io/gorm"
)

func newTransferService(t *testing.T, db *gorm.DB, fallback bool) TransferServicer {
	t.Helper()
	registry := NewRegistryService(db)
	accounts := NewAccountService(db, registry)
	resolver := fx.NewResolver(fx.NewGormRateStore(db), "AED")
	return NewTransferService(db, accounts, resolver, fallback)
}

func TestCreateTransfer(t *testing.T) {
	t.Run("same_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransferService(t, db, true)
		from := testutil.CreateTestAccount(t, db, "AED")
		to := testutil.CreateTestAccount(t, db, "AED")

		transfer, err := svc.CreateTransfer("2025-06-15", from.ID, to.ID, 10000, "")
		testutil.AssertNoError(t, err)

		testutil.AssertMinor(t, 10000, transfer.AmountToMinor)
		if transfer.FXRateUsed != 1 {
			t.Errorf("expected rate 1, got %f", transfer.FXRateUsed)
		}
		if transfer.FXSource != string(fx.ProvenanceSameCurrency) {
			t.Errorf("expected source same_currency, got %s", transfer.FXSource)
		}
	})

	t.Run("cross_currency_without_rate_falls_back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransferService(t, db, true)
		from := testutil.CreateTestAccount(t, db, "AED")
		to := testutil.CreateTestAccount(t, db, "USD")

		transfer, err := svc.CreateTransfer("2025-06-15", from.ID, to.ID, 10000, "")
		testutil.AssertNoError(t, err)

		// No observation: the transfer proceeds at 1:1 and records it.
		testutil.AssertMinor(t, 10000, transfer.AmountToMinor)
		if transfer.FXRateUsed != 1 {
			t.Errorf("expected rate 1, got %f", transfer.FXRateUsed)
		}
		if transfer.FXSource != string(fx.ProvenanceMissingFallback) {
			t.Errorf("expected source missing_1_1, got %s", transfer.FXSource)
		}
	})

	t.Run("cross_currency_with_rate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransferService(t, db, true)
		from := testutil.CreateTestAccount(t, db, "AED")
		to := testutil.CreateTestAccount(t, db, "USD")
		testutil.CreateTestRate(t, db, "AED", "USD", 0.27, "2025-06-01")

		transfer, err := svc.CreateTransfer("2025-06-15", from.ID, to.ID, 10000, "")
		testutil.AssertNoError(t, err)

		testutil.AssertMinor(t, 2700, transfer.AmountToMinor)
		if transfer.FXRateUsed != 0.27 {
			t.Errorf("expected rate 0.27, got %f", transfer.FXRateUsed)
		}
		if transfer.FXSource != string(fx.ProvenanceDirect) {
			t.Errorf("expected source direct, got %s", transfer.FXSource)
		}
		if transfer.CurrencyFromCode != "AED" || transfer.CurrencyToCode != "USD" {
			t.Errorf("expected AED->USD, got %s->%s", transfer.CurrencyFromCode, transfer.CurrencyToCode)
		}
	})

	t.Run("cross_currency_without_rate_fallback_disabled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransferService(t, db, false)
		from := testutil.CreateTestAccount(t, db, "AED")
		to := testutil.CreateTestAccount(t, db, "USD")

		_, err := svc.CreateTransfer("2025-06-15", from.ID, to.ID, 10000, "")
		testutil.AssertAppError(t, err, "RATE_UNAVAILABLE")
	})

	t.Run("same_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransferService(t, db, true)
		account := testutil.CreateTestAccount(t, db, "AED")

		_, err := svc.CreateTransfer("2025-06-15", account.ID, account.ID, 10000, "")
		testutil.AssertAppError(t, err, "SAME_ACCOUNT_TRANSFER")
	})

	t.Run("archived_destination", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransferService(t, db, true)
		from := testutil.CreateTestAccount(t, db, "AED")
		to := testutil.CreateTestAccount(t, db, "AED")

		if err := db.Model(to).Update("archived", true).Error; err != nil {
			t.Fatalf("failed to archive account: %v", err)
		}

		_, err := svc.CreateTransfer("2025-06-15", from.ID, to.ID, 10000, "")
		testutil.AssertAppError(t, err, "ACCOUNT_ARCHIVED")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransferService(t, db, true)

		_, err := svc.CreateTransfer("2025-06-15", "a", "b", -5, "")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestListTransfers(t *testing.T) {
	t.Run("account_filter_matches_either_side", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransferService(t, db, true)
		a := testutil.CreateTestAccount(t, db, "AED")
		b := testutil.CreateTestAccount(t, db, "AED")
		c := testutil.CreateTestAccount(t, db, "AED")

		_, err := svc.CreateTransfer("2025-06-01", a.ID, b.ID, 100, "")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateTransfer("2025-06-02", b.ID, c.ID, 200, "")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateTransfer("2025-06-03", a.ID, c.ID, 300, "")
		testutil.AssertNoError(t, err)

		result, err := svc.ListTransfers(pagination.PageRequest{}, LedgerFilter{AccountID: &b.ID})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 transfers touching the account, got %d", result.TotalItems)
		}
	})
}

func TestDeleteTransfer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransferService(t, db, true)
		from := testutil.CreateTestAccount(t, db, "AED")
		to := testutil.CreateTestAccount(t, db, "AED")

		transfer, err := svc.CreateTransfer("2025-06-15", from.ID, to.ID, 10000, "")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteTransfer(transfer.ID))

		_, err = svc.GetTransferByID(transfer.ID)
		testutil.AssertAppError(t, err, "TRANSFER_NOT_FOUND")
	})
}
