package services

import (
	"testing"

	"homeledger/internal/models"
	"homeledger/internal/testutil"
)

func TestCreateGroup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		testutil.CreateTestCurrency(t, db, "AED")

		group, err := svc.CreateGroup("UAE Household", "AE", "AED")
		testutil.AssertNoError(t, err)

		if group.ID == "" {
			t.Fatal("expected a generated group ID")
		}
		if group.CurrencyCode != "AED" {
			t.Errorf("expected currency AED, got %s", group.CurrencyCode)
		}
	})

	t.Run("unknown_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))

		_, err := svc.CreateGroup("UAE Household", "AE", "XXX")
		testutil.AssertAppError(t, err, "CURRENCY_NOT_FOUND")
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		testutil.CreateTestCurrency(t, db, "AED")

		_, err := svc.CreateGroup("Duplicated Group", "AE", "AED")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateGroup("Duplicated Group", "AE", "AED")
		testutil.AssertAppError(t, err, "CONFLICT")
	})
}

func TestCreateCategory(t *testing.T) {
	t.Run("root_with_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		group := testutil.CreateTestGroup(t, db, "AED")

		category, err := svc.CreateCategory(group.ID, "Groceries", models.CategoryTypeExpense, nil)
		testutil.AssertNoError(t, err)

		if category.Depth != 1 {
			t.Errorf("expected depth 1 for a root, got %d", category.Depth)
		}
		if category.Type != models.CategoryTypeExpense {
			t.Errorf("expected type expense, got %s", category.Type)
		}
	})

	t.Run("root_without_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		group := testutil.CreateTestGroup(t, db, "AED")

		_, err := svc.CreateCategory(group.ID, "Groceries", "", nil)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("child_inherits_parent_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		group := testutil.CreateTestGroup(t, db, "AED")
		parent := testutil.CreateTestCategory(t, db, group.ID, models.CategoryTypeExpense)

		// A conflicting requested type is ignored, not rejected.
		child, err := svc.CreateCategory(group.ID, "Fruit", models.CategoryTypeIncome, &parent.ID)
		testutil.AssertNoError(t, err)

		if child.Type != models.CategoryTypeExpense {
			t.Errorf("expected inherited type expense, got %s", child.Type)
		}
		if child.Depth != 2 {
			t.Errorf("expected depth 2, got %d", child.Depth)
		}
	})

	t.Run("grandchild_depth", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		group := testutil.CreateTestGroup(t, db, "AED")
		parent := testutil.CreateTestCategory(t, db, group.ID, models.CategoryTypeExpense)
		child := testutil.CreateTestChildCategory(t, db, parent)

		grandchild, err := svc.CreateCategory(group.ID, "Citrus", "", &child.ID)
		testutil.AssertNoError(t, err)

		if grandchild.Depth != 3 {
			t.Errorf("expected depth 3, got %d", grandchild.Depth)
		}
	})

	t.Run("parent_in_different_group", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		groupA := testutil.CreateTestGroup(t, db, "AED")
		groupB := testutil.CreateTestGroup(t, db, "USD")
		parent := testutil.CreateTestCategory(t, db, groupA.ID, models.CategoryTypeExpense)

		_, err := svc.CreateCategory(groupB.ID, "Fruit", "", &parent.ID)
		testutil.AssertAppError(t, err, "PARENT_GROUP_MISMATCH")
	})

	t.Run("unknown_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		group := testutil.CreateTestGroup(t, db, "AED")

		missing := "0198a5e4-0000-7000-8000-000000000000"
		_, err := svc.CreateCategory(group.ID, "Fruit", "", &missing)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("leaf_deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		group := testutil.CreateTestGroup(t, db, "AED")
		category := testutil.CreateTestCategory(t, db, group.ID, models.CategoryTypeExpense)

		testutil.AssertNoError(t, svc.DeleteCategory(category.ID))

		_, err := svc.GetCategoryByID(category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("with_children_conflicts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		group := testutil.CreateTestGroup(t, db, "AED")
		parent := testutil.CreateTestCategory(t, db, group.ID, models.CategoryTypeExpense)
		testutil.CreateTestChildCategory(t, db, parent)

		err := svc.DeleteCategory(parent.ID)
		testutil.AssertAppError(t, err, "CATEGORY_HAS_CHILDREN")
	})
}

func TestSetCategoryArchived(t *testing.T) {
	t.Run("archive_with_children_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		group := testutil.CreateTestGroup(t, db, "AED")
		parent := testutil.CreateTestCategory(t, db, group.ID, models.CategoryTypeExpense)
		child := testutil.CreateTestChildCategory(t, db, parent)

		archived, err := svc.SetCategoryArchived(parent.ID, true)
		testutil.AssertNoError(t, err)

		if !archived.Archived {
			t.Error("expected the category to be archived")
		}

		// Children are untouched.
		got, err := svc.GetCategoryByID(child.ID)
		testutil.AssertNoError(t, err)
		if got.Archived {
			t.Error("expected the child to remain unarchived")
		}
	})

	t.Run("unarchive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		group := testutil.CreateTestGroup(t, db, "AED")
		category := testutil.CreateTestCategory(t, db, group.ID, models.CategoryTypeExpense)

		_, err := svc.SetCategoryArchived(category.ID, true)
		testutil.AssertNoError(t, err)
		got, err := svc.SetCategoryArchived(category.ID, false)
		testutil.AssertNoError(t, err)

		if got.Archived {
			t.Error("expected the category to be unarchived")
		}
	})
}

func TestEffectiveCurrency(t *testing.T) {
	t.Run("falls_back_to_group", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		group := testutil.CreateTestGroup(t, db, "AED")
		category := testutil.CreateTestCategory(t, db, group.ID, models.CategoryTypeExpense)

		currency, err := svc.EffectiveCurrency(category)
		testutil.AssertNoError(t, err)

		if currency != "AED" {
			t.Errorf("expected AED from the group, got %s", currency)
		}
	})

	t.Run("override_wins", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewRegistryService(db))
		group := testutil.CreateTestGroup(t, db, "AED")
		category := testutil.CreateTestCategory(t, db, group.ID, models.CategoryTypeExpense)

		override := "USD"
		category.CurrencyCode = &override
		if err := db.Model(category).Update("currency_code", override).Error; err != nil {
			t.Fatalf("failed to set currency override: %v", err)
		}

		currency, err := svc.EffectiveCurrency(category)
		testutil.AssertNoError(t, err)

		if currency != "USD" {
			t.Errorf("expected the USD override, got %s", currency)
		}
	})
}
