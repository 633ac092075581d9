package fx

import (
	"testing"

	"homeledger/internal/models"
	"homeledger/internal/testutil"
)

func TestFindLatestOnOrBefore(t *testing.T) {
	t.Run("picks_latest_on_or_before", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormRateStore(db)

		testutil.CreateTestRate(t, db, "AED", "USD", 0.26, "2025-05-01")
		testutil.CreateTestRate(t, db, "AED", "USD", 0.27, "2025-06-01")
		testutil.CreateTestRate(t, db, "AED", "USD", 0.28, "2025-07-01")

		rate, err := store.FindLatestOnOrBefore("AED", "USD", "2025-06-15")
		testutil.AssertNoError(t, err)

		if rate == nil {
			t.Fatal("expected an observation")
		}
		if rate.Rate != 0.27 {
			t.Errorf("expected rate 0.27, got %f", rate.Rate)
		}
		if rate.EffectiveDate != "2025-06-01" {
			t.Errorf("expected effective date 2025-06-01, got %s", rate.EffectiveDate)
		}
	})

	t.Run("exact_date_match", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormRateStore(db)

		testutil.CreateTestRate(t, db, "AED", "INR", 22.7, "2025-06-15")

		rate, err := store.FindLatestOnOrBefore("AED", "INR", "2025-06-15")
		testutil.AssertNoError(t, err)

		if rate == nil || rate.Rate != 22.7 {
			t.Fatalf("expected the same-day observation, got %+v", rate)
		}
	})

	t.Run("none_before_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormRateStore(db)

		testutil.CreateTestRate(t, db, "AED", "USD", 0.27, "2025-06-01")

		rate, err := store.FindLatestOnOrBefore("AED", "USD", "2025-05-15")
		testutil.AssertNoError(t, err)

		if rate != nil {
			t.Errorf("expected no observation, got %+v", rate)
		}
	})

	t.Run("direction_is_significant", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormRateStore(db)

		testutil.CreateTestRate(t, db, "AED", "USD", 0.27, "2025-06-01")

		rate, err := store.FindLatestOnOrBefore("USD", "AED", "2025-06-15")
		testutil.AssertNoError(t, err)

		if rate != nil {
			t.Errorf("expected no observation for the reversed pair, got %+v", rate)
		}
	})
}

func TestUpsert(t *testing.T) {
	t.Run("insert_then_overwrite", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormRateStore(db)

		first, err := store.Upsert("AED", "USD", 0.27, "2025-06-01", "manual", "")
		testutil.AssertNoError(t, err)

		second, err := store.Upsert("AED", "USD", 0.272, "2025-06-01", "provider", "refreshed")
		testutil.AssertNoError(t, err)

		if second.ID != first.ID {
			t.Errorf("expected the overwrite to keep the original row, got ids %s and %s", first.ID, second.ID)
		}
		if second.Rate != 0.272 {
			t.Errorf("expected rate 0.272 after overwrite, got %f", second.Rate)
		}
		if second.Source != "provider" {
			t.Errorf("expected source provider after overwrite, got %s", second.Source)
		}

		var count int64
		if err := db.Model(&models.FXRate{}).
			Where("from_code = ? AND to_code = ? AND effective_date = ?", "AED", "USD", "2025-06-01").
			Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected exactly one row for the key, got %d", count)
		}
	})

	t.Run("different_dates_coexist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormRateStore(db)

		_, err := store.Upsert("AED", "USD", 0.27, "2025-06-01", "manual", "")
		testutil.AssertNoError(t, err)
		_, err = store.Upsert("AED", "USD", 0.28, "2025-06-02", "manual", "")
		testutil.AssertNoError(t, err)

		var count int64
		if err := db.Model(&models.FXRate{}).
			Where("from_code = ? AND to_code = ?", "AED", "USD").
			Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 2 {
			t.Errorf("expected two rows, got %d", count)
		}
	})
}

func TestList(t *testing.T) {
	t.Run("filters_by_pair", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewGormRateStore(db)

		testutil.CreateTestRate(t, db, "AED", "USD", 0.27, "2025-06-01")
		testutil.CreateTestRate(t, db, "AED", "INR", 22.7, "2025-06-01")
		testutil.CreateTestRate(t, db, "AED", "USD", 0.28, "2025-06-02")

		rates, total, err := store.List("AED", "USD", 10, 0)
		testutil.AssertNoError(t, err)

		if total != 2 {
			t.Errorf("expected total 2, got %d", total)
		}
		if len(rates) != 2 {
			t.Fatalf("expected 2 rates, got %d", len(rates))
		}
		if rates[0].EffectiveDate != "2025-06-02" {
			t.Errorf("expected newest first, got %s", rates[0].EffectiveDate)
		}
	})
}
