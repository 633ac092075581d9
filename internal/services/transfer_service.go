package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "homeledger/internal/errors"
	"homeledger/internal/fx"
	"homeledger/internal/models"
	"homeledger/internal/money"
	"homeledger/internal/pagination"
)

// transferService builds immutable account-to-account transfers.
type transferService struct {
	db               *gorm.DB
	accounts         AccountServicer
	resolver         *fx.Resolver
	fallbackOneToOne bool
}

// NewTransferService creates a new TransferServicer.
func NewTransferService(db *gorm.DB, accounts AccountServicer, resolver *fx.Resolver, fallbackOneToOne bool) TransferServicer {
	return &transferService{
		db:               db,
		accounts:         accounts,
		resolver:         resolver,
		fallbackOneToOne: fallbackOneToOne,
	}
}

// CreateTransfer validates the input, derives the destination-side
// amount, and persists the transfer. Unlike a posting, the resolved rate
// and its provenance are persisted on the record: the conversion rate is
// a first-class fact of the transfer, replayable later.
func (s *transferService) CreateTransfer(date, fromAccountID, toAccountID string, amountFromMinor int64, note string) (*models.Transfer, error) {
	if !IsCivilDate(date) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "date must be a YYYY-MM-DD date")
	}
	if amountFromMinor <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "amount_from_minor must be a positive integer")
	}
	if fromAccountID == toAccountID {
		return nil, apperrors.ErrSameAccountTransfer
	}

	fromAccount, err := s.accounts.GetAccountByID(fromAccountID)
	if err != nil {
		return nil, err
	}
	toAccount, err := s.accounts.GetAccountByID(toAccountID)
	if err != nil {
		return nil, err
	}
	if fromAccount.Archived || toAccount.Archived {
		return nil, apperrors.ErrAccountArchived
	}

	resolution, err := s.resolveTransferRate(fromAccount.CurrencyCode, toAccount.CurrencyCode, date)
	if err != nil {
		return nil, err
	}

	amountTo := amountFromMinor
	if resolution.Rate != 1 {
		amountTo = money.Convert(amountFromMinor, resolution.Rate)
	}

	transfer := &models.Transfer{
		Date:             date,
		FromAccountID:    fromAccount.ID,
		ToAccountID:      toAccount.ID,
		AmountFromMinor:  amountFromMinor,
		CurrencyFromCode: fromAccount.CurrencyCode,
		AmountToMinor:    amountTo,
		CurrencyToCode:   toAccount.CurrencyCode,
		FXRateUsed:       resolution.Rate,
		FXSource:         string(resolution.Provenance),
		Note:             note,
		Status:           models.StatusPosted,
	}
	if err := s.db.Create(transfer).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transfer, nil
}

// resolveTransferRate resolves from→to, applying the configured 1:1
// fallback when no rate exists. Matching currencies never touch the
// store.
func (s *transferService) resolveTransferRate(fromCurrency, toCurrency, date string) (*fx.Resolution, error) {
	if fromCurrency == toCurrency {
		return &fx.Resolution{Rate: 1, Provenance: fx.ProvenanceSameCurrency, EffectiveDate: date}, nil
	}

	resolution, err := s.resolver.Resolve(fromCurrency, toCurrency, date)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrRateUnavailable.Code && s.fallbackOneToOne {
			// Recorded, visible degraded state: the transfer proceeds at 1:1
			// and carries missing_1_1 so it can be corrected later.
			return &fx.Resolution{Rate: 1, Provenance: fx.ProvenanceMissingFallback}, nil
		}
		return nil, err
	}
	return resolution, nil
}

// GetTransferByID retrieves a transfer by ID.
func (s *transferService) GetTransferByID(id string) (*models.Transfer, error) {
	var transfer models.Transfer
	if err := s.db.Where("id = ?", id).First(&transfer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransferNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transfer, nil
}

// ListTransfers retrieves a paginated, filtered list of transfers. The
// AccountID filter matches either side of the transfer.
func (s *transferService) ListTransfers(page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.Transfer], error) {
	page.Defaults()

	base := s.db.Model(&models.Transfer{})
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.AccountID != nil {
		base = base.Where("from_account_id = ? OR to_account_id = ?", *filter.AccountID, *filter.AccountID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transfers []models.Transfer
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&transfers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transfers, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteTransfer removes a transfer wholesale. Deletion has no cascading
// effect on rate observations or other records.
func (s *transferService) DeleteTransfer(id string) error {
	transfer, err := s.GetTransferByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transfer).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
