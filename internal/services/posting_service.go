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

// postingService builds immutable account-to-category postings.
type postingService struct {
	db         *gorm.DB
	accounts   AccountServicer
	categories CategoryServicer
	resolver   *fx.Resolver
	// fallbackOneToOne controls what happens when no rate can be resolved:
	// record the posting at rate 1 with missing_1_1 provenance, or reject.
	fallbackOneToOne bool
}

// NewPostingService creates a new PostingServicer.
func NewPostingService(db *gorm.DB, accounts AccountServicer, categories CategoryServicer, resolver *fx.Resolver, fallbackOneToOne bool) PostingServicer {
	return &postingService{
		db:               db,
		accounts:         accounts,
		categories:       categories,
		resolver:         resolver,
		fallbackOneToOne: fallbackOneToOne,
	}
}

// CreatePosting validates the input, derives the category-side amount,
// and persists the posting. The returned Resolution describes how the
// category amount was computed; it is response metadata and is not
// stored on the posting row.
//
// The account's currency is authoritative for the posting itself; any
// client-supplied currency is ignored by construction since none is
// accepted here.
func (s *postingService) CreatePosting(date, accountID, categoryID string, amountMinor int64, postingType models.PostingType, note string) (*models.Posting, *fx.Resolution, error) {
	if !IsCivilDate(date) {
		return nil, nil, apperrors.WithMessage(apperrors.ErrValidation, "date must be a YYYY-MM-DD date")
	}
	if amountMinor <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrValidation, "amount_minor must be a positive integer")
	}
	if postingType != models.PostingTypeExpense && postingType != models.PostingTypeIncome {
		return nil, nil, apperrors.WithMessage(apperrors.ErrValidation, "type must be expense or income")
	}

	account, err := s.accounts.GetAccountByID(accountID)
	if err != nil {
		return nil, nil, err
	}
	if account.Archived {
		return nil, nil, apperrors.ErrAccountArchived
	}

	category, err := s.categories.GetCategoryByID(categoryID)
	if err != nil {
		return nil, nil, err
	}
	if category.Archived {
		return nil, nil, apperrors.ErrCategoryArchived
	}

	categoryCurrency, err := s.categories.EffectiveCurrency(category)
	if err != nil {
		return nil, nil, err
	}

	resolution, categoryAmount, err := s.deriveCategoryAmount(account.CurrencyCode, categoryCurrency, date, amountMinor)
	if err != nil {
		return nil, nil, err
	}

	posting := &models.Posting{
		Date:                 date,
		AccountID:            account.ID,
		CategoryID:           category.ID,
		AmountMinor:          amountMinor,
		CurrencyCode:         account.CurrencyCode,
		CategoryAmountMinor:  categoryAmount,
		CategoryCurrencyCode: categoryCurrency,
		Type:                 postingType,
		Note:                 note,
		Status:               models.StatusPosted,
	}
	if err := s.db.Create(posting).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return posting, resolution, nil
}

// deriveCategoryAmount computes the category-side amount. Matching
// currencies take no resolver call at all; otherwise the resolved rate is
// applied with a single half-up rounding.
func (s *postingService) deriveCategoryAmount(accountCurrency, categoryCurrency, date string, amountMinor int64) (*fx.Resolution, int64, error) {
	if accountCurrency == categoryCurrency {
		res := &fx.Resolution{Rate: 1, Provenance: fx.ProvenanceSameCurrency, EffectiveDate: date}
		return res, amountMinor, nil
	}

	resolution, err := s.resolver.Resolve(accountCurrency, categoryCurrency, date)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrRateUnavailable.Code && s.fallbackOneToOne {
			res := &fx.Resolution{Rate: 1, Provenance: fx.ProvenanceMissingFallback}
			return res, amountMinor, nil
		}
		return nil, 0, err
	}
	return resolution, money.Convert(amountMinor, resolution.Rate), nil
}

// GetPostingByID retrieves a posting by ID.
func (s *postingService) GetPostingByID(id string) (*models.Posting, error) {
	var posting models.Posting
	if err := s.db.Where("id = ?", id).First(&posting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &posting, nil
}

// ListPostings retrieves a paginated, filtered list of postings.
func (s *postingService) ListPostings(page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.Posting], error) {
	page.Defaults()

	base := s.db.Model(&models.Posting{})
	base = applyLedgerFilter(base, "account_id", filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var postings []models.Posting
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&postings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(postings, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeletePosting removes a posting wholesale. Postings are never amended;
// deletion is the only way to undo one, and it cascades to nothing.
func (s *postingService) DeletePosting(id string) error {
	posting, err := s.GetPostingByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(posting).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// applyLedgerFilter applies shared posting/transfer list filters. column
// names the account column to match for the AccountID filter.
func applyLedgerFilter(q *gorm.DB, accountColumn string, f LedgerFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.AccountID != nil {
		q = q.Where(accountColumn+" = ?", *f.AccountID)
	}
	return q
}
