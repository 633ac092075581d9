package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
	"homeledger/internal/pagination"
)

// categoryService handles category groups and the category tree.
type categoryService struct {
	db       *gorm.DB
	registry RegistryServicer
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, registry RegistryServicer) CategoryServicer {
	return &categoryService{db: db, registry: registry}
}

// CreateGroup creates a currency-scoped category group.
func (s *categoryService) CreateGroup(name, countryCode, currencyCode string) (*models.CategoryGroup, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "name is required")
	}

	currency, err := s.registry.GetCurrency(currencyCode)
	if err != nil {
		return nil, err
	}
	if !currency.Enabled {
		return nil, apperrors.ErrCurrencyDisabled
	}

	var count int64
	if err := s.db.Model(&models.CategoryGroup{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrConflict, "A group with this name already exists")
	}

	group := &models.CategoryGroup{
		Name:         name,
		CountryCode:  countryCode,
		CurrencyCode: currency.Code,
	}
	if err := s.db.Create(group).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return group, nil
}

// GetGroupByID retrieves a category group by ID.
func (s *categoryService) GetGroupByID(id string) (*models.CategoryGroup, error) {
	var group models.CategoryGroup
	if err := s.db.Where("id = ?", id).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &group, nil
}

// ListGroups retrieves all category groups.
func (s *categoryService) ListGroups() ([]models.CategoryGroup, error) {
	var groups []models.CategoryGroup
	if err := s.db.Order("name ASC").Find(&groups).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return groups, nil
}

// CreateCategory creates a category in a group.
//
// With a parent, the new category's type is forced to the parent's type
// no matter what the caller requested: a subtree's type is fixed at its
// root and inheritance is mandatory, not a default. Without a parent the
// caller must supply the type, since root categories define it for their
// subtree.
func (s *categoryService) CreateCategory(groupID, name string, categoryType models.CategoryType, parentID *string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "name is required")
	}

	group, err := s.GetGroupByID(groupID)
	if err != nil {
		return nil, err
	}

	depth := 1
	effectiveType := categoryType

	if parentID != nil {
		var parent models.Category
		if err := s.db.Where("id = ?", *parentID).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.WithMessage(apperrors.ErrCategoryNotFound, "Parent category not found")
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if parent.GroupID != group.ID {
			return nil, apperrors.ErrParentGroupMismatch
		}
		effectiveType = parent.Type
		depth = parent.Depth + 1
	} else {
		switch effectiveType {
		case models.CategoryTypeExpense, models.CategoryTypeIncome, models.CategoryTypeSaving,
			models.CategoryTypeLiability, models.CategoryTypeTransferSpecial:
		case "":
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "type is required for a root category")
		default:
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "type must be one of expense, income, saving, liability, transfer_special")
		}
	}

	category := &models.Category{
		GroupID:  group.ID,
		ParentID: parentID,
		Depth:    depth,
		Name:     name,
		Type:     effectiveType,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategoryByID retrieves a category by ID.
func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// ListCategories retrieves a paginated list of categories, optionally
// filtered to one group.
func (s *categoryService) ListCategories(groupID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := s.db.Model(&models.Category{})
	if groupID != "" {
		base = base.Where("group_id = ?", groupID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Scopes(pagination.Paginate(page)).Order("depth ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// SetCategoryArchived toggles the archived flag. Archiving is always
// allowed, has no effect on children, and is reversible.
func (s *categoryService) SetCategoryArchived(id string, archived bool) (*models.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(category).Update("archived", archived).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// DeleteCategory removes a category. A category with children, archived
// or not, cannot be deleted.
func (s *categoryService) DeleteCategory(id string) error {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return err
	}

	var childCount int64
	if err := s.db.Model(&models.Category{}).Where("parent_id = ?", id).Count(&childCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if childCount > 0 {
		return apperrors.ErrCategoryHasChildren
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// EffectiveCurrency returns the category's own currency override when
// set, otherwise the currency of its group.
func (s *categoryService) EffectiveCurrency(category *models.Category) (string, error) {
	if category.CurrencyCode != nil && *category.CurrencyCode != "" {
		return *category.CurrencyCode, nil
	}
	group, err := s.GetGroupByID(category.GroupID)
	if err != nil {
		return "", err
	}
	return group.CurrencyCode, nil
}
