package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
)

// registryService handles the plain keyed registries.
type registryService struct {
	db *gorm.DB
}

// NewRegistryService creates a new RegistryServicer.
func NewRegistryService(db *gorm.DB) RegistryServicer {
	return &registryService{db: db}
}

// CreateCurrency adds a currency to the registry.
func (s *registryService) CreateCurrency(code, name string, decimalDigits int32, symbol string) (*models.Currency, error) {
	code = strings.ToUpper(code)
	if len(code) != 3 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "code must be a three-letter currency code")
	}
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "name is required")
	}
	if decimalDigits < 0 || decimalDigits > 6 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "decimal_digits must be between 0 and 6")
	}

	var count int64
	if err := s.db.Model(&models.Currency{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCode
	}

	currency := &models.Currency{
		Code:          code,
		Name:          name,
		DecimalDigits: decimalDigits,
		Symbol:        symbol,
		Enabled:       true,
	}
	if err := s.db.Create(currency).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return currency, nil
}

// GetCurrency retrieves a currency by code.
func (s *registryService) GetCurrency(code string) (*models.Currency, error) {
	var currency models.Currency
	if err := s.db.Where("code = ?", strings.ToUpper(code)).First(&currency).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCurrencyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &currency, nil
}

// ListCurrencies retrieves all currencies, optionally only enabled ones.
func (s *registryService) ListCurrencies(enabledOnly bool) ([]models.Currency, error) {
	base := s.db.Model(&models.Currency{}).Order("code ASC")
	if enabledOnly {
		base = base.Where("enabled = ?", true)
	}
	var currencies []models.Currency
	if err := base.Find(&currencies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return currencies, nil
}

// SetCurrencyEnabled toggles a currency's enabled flag. The code and
// decimal digits stay immutable once the currency exists.
func (s *registryService) SetCurrencyEnabled(code string, enabled bool) (*models.Currency, error) {
	currency, err := s.GetCurrency(code)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(currency).Update("enabled", enabled).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return currency, nil
}

// CreateAccountType adds an account type to the registry.
func (s *registryService) CreateAccountType(code, name string, nature models.AccountTypeNature) (*models.AccountType, error) {
	if code == "" || name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "code and name are required")
	}
	switch nature {
	case models.NatureAsset, models.NatureLiability, models.NatureOther:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "nature must be asset, liability, or other")
	}

	var count int64
	if err := s.db.Model(&models.AccountType{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCode
	}

	accountType := &models.AccountType{Code: code, Name: name, Nature: nature, Enabled: true}
	if err := s.db.Create(accountType).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accountType, nil
}

// ListAccountTypes retrieves all account types.
func (s *registryService) ListAccountTypes() ([]models.AccountType, error) {
	var types []models.AccountType
	if err := s.db.Order("code ASC").Find(&types).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return types, nil
}

// CreateInstitution adds an institution to the registry.
func (s *registryService) CreateInstitution(name, country, abbr, website string) (*models.Institution, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "name is required")
	}

	var count int64
	if err := s.db.Model(&models.Institution{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrDuplicateCode, "An institution with this name already exists")
	}

	institution := &models.Institution{
		Name:    name,
		Country: country,
		Abbr:    abbr,
		Website: website,
		Enabled: true,
	}
	if err := s.db.Create(institution).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return institution, nil
}

// ListInstitutions retrieves all institutions.
func (s *registryService) ListInstitutions() ([]models.Institution, error) {
	var institutions []models.Institution
	if err := s.db.Order("name ASC").Find(&institutions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return institutions, nil
}

// CreateCardType adds a card type to the registry.
func (s *registryService) CreateCardType(code, name, network, category string) (*models.CardType, error) {
	if code == "" || name == "" || network == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "code, name, and network are required")
	}

	var count int64
	if err := s.db.Model(&models.CardType{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCode
	}

	cardType := &models.CardType{Code: code, Name: name, Network: network, Category: category, Enabled: true}
	if err := s.db.Create(cardType).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cardType, nil
}

// ListCardTypes retrieves all card types.
func (s *registryService) ListCardTypes() ([]models.CardType, error) {
	var types []models.CardType
	if err := s.db.Order("code ASC").Find(&types).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return types, nil
}
