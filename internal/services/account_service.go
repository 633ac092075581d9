package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
	"homeledger/internal/pagination"
)

// accountService handles account-related business logic.
type accountService struct {
	db       *gorm.DB
	registry RegistryServicer
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB, registry RegistryServicer) AccountServicer {
	return &accountService{db: db, registry: registry}
}

// CreateAccount creates a new account. The currency is fixed here for the
// lifetime of the account; no update path for it exists.
func (s *accountService) CreateAccount(name, typeCode, currencyCode string, openingBalanceMinor int64, openingDate string, institutionID *string, notes string) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "name is required")
	}
	if typeCode == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "type_code is required")
	}
	if openingDate != "" && !IsCivilDate(openingDate) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "opening_date must be a YYYY-MM-DD date")
	}

	currency, err := s.registry.GetCurrency(currencyCode)
	if err != nil {
		return nil, err
	}
	if !currency.Enabled {
		return nil, apperrors.ErrCurrencyDisabled
	}

	var count int64
	if err := s.db.Model(&models.Account{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateAccount
	}

	if institutionID != nil {
		var institution models.Institution
		if err := s.db.Where("id = ?", *institutionID).First(&institution).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrInstitutionNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	account := &models.Account{
		Name:                name,
		TypeCode:            typeCode,
		CurrencyCode:        currency.Code,
		OpeningBalanceMinor: openingBalanceMinor,
		OpeningDate:         openingDate,
		InstitutionID:       institutionID,
		Notes:               notes,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(id string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// ListAccounts retrieves a paginated list of accounts. Archived accounts
// are excluded unless includeArchived is set.
func (s *accountService) ListAccounts(page pagination.PageRequest, includeArchived bool) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	base := s.db.Model(&models.Account{})
	if !includeArchived {
		base = base.Where("archived = ?", false)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).Order("name ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// SetArchived toggles the archived flag. Archiving is soft and
// reversible; archived accounts reject new postings and transfers.
func (s *accountService) SetArchived(id string, archived bool) (*models.Account, error) {
	account, err := s.GetAccountByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(account).Update("archived", archived).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// AddCard attaches a payment card to an account.
func (s *accountService) AddCard(accountID, cardTypeCode, network, nameOnCard string, expiryMonth, expiryYear int, panLast4 string) (*models.PaymentCard, error) {
	account, err := s.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}
	if account.Archived {
		return nil, apperrors.ErrAccountArchived
	}
	if panLast4 != "" && len(panLast4) != 4 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "pan_last4 must be exactly 4 digits")
	}
	if expiryMonth != 0 && (expiryMonth < 1 || expiryMonth > 12) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "expiry_month must be between 1 and 12")
	}

	card := &models.PaymentCard{
		AccountID:    account.ID,
		CardTypeCode: cardTypeCode,
		Network:      strings.ToLower(network),
		NameOnCard:   nameOnCard,
		ExpiryMonth:  expiryMonth,
		ExpiryYear:   expiryYear,
		PanLast4:     panLast4,
	}
	if err := s.db.Create(card).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return card, nil
}

// ListCards retrieves all cards for an account.
func (s *accountService) ListCards(accountID string) ([]models.PaymentCard, error) {
	if _, err := s.GetAccountByID(accountID); err != nil {
		return nil, err
	}
	var cards []models.PaymentCard
	if err := s.db.Where("account_id = ?", accountID).Order("created_at ASC").Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cards, nil
}

// IsCivilDate reports whether s is a calendar date in YYYY-MM-DD form.
func IsCivilDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
