package services

import (
	"context"

	"homeledger/internal/fx"
	"homeledger/internal/models"
	"homeledger/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// RegistryServicer defines the contract for the plain keyed registries:
// currencies, account types, institutions, and card types.
type RegistryServicer interface {
	CreateCurrency(code, name string, decimalDigits int32, symbol string) (*models.Currency, error)
	GetCurrency(code string) (*models.Currency, error)
	ListCurrencies(enabledOnly bool) ([]models.Currency, error)
	SetCurrencyEnabled(code string, enabled bool) (*models.Currency, error)

	CreateAccountType(code, name string, nature models.AccountTypeNature) (*models.AccountType, error)
	ListAccountTypes() ([]models.AccountType, error)

	CreateInstitution(name, country, abbr, website string) (*models.Institution, error)
	ListInstitutions() ([]models.Institution, error)

	CreateCardType(code, name, network, category string) (*models.CardType, error)
	ListCardTypes() ([]models.CardType, error)
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(name, typeCode, currencyCode string, openingBalanceMinor int64, openingDate string, institutionID *string, notes string) (*models.Account, error)
	GetAccountByID(id string) (*models.Account, error)
	ListAccounts(page pagination.PageRequest, includeArchived bool) (*pagination.PageResponse[models.Account], error)
	SetArchived(id string, archived bool) (*models.Account, error)
	AddCard(accountID, cardTypeCode, network, nameOnCard string, expiryMonth, expiryYear int, panLast4 string) (*models.PaymentCard, error)
	ListCards(accountID string) ([]models.PaymentCard, error)
}

// CategoryServicer defines the contract for category groups and the
// category tree, including effective-currency resolution.
type CategoryServicer interface {
	CreateGroup(name, countryCode, currencyCode string) (*models.CategoryGroup, error)
	GetGroupByID(id string) (*models.CategoryGroup, error)
	ListGroups() ([]models.CategoryGroup, error)

	CreateCategory(groupID, name string, categoryType models.CategoryType, parentID *string) (*models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	ListCategories(groupID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	SetCategoryArchived(id string, archived bool) (*models.Category, error)
	DeleteCategory(id string) error

	// EffectiveCurrency returns the category's own currency override when
	// set, otherwise the currency of its group.
	EffectiveCurrency(category *models.Category) (string, error)
}

// CurrencyPair names a directed currency pair for provider fetches.
type CurrencyPair struct {
	From string `json:"from" binding:"required,currency_code"`
	To   string `json:"to" binding:"required,currency_code"`
}

// FXServicer defines the contract for rate observations and resolution.
type FXServicer interface {
	UpsertRate(from, to string, rate float64, effectiveDate, source, note string) (*models.FXRate, error)
	ListRates(from, to string, page pagination.PageRequest) (*pagination.PageResponse[models.FXRate], error)
	ResolveRate(base, quote, date string) (*fx.Resolution, error)
	FetchRates(ctx context.Context, pairs []CurrencyPair, date string) ([]models.FXRate, []error)
}

// LedgerFilter holds optional filter parameters for listing postings and
// transfers.
type LedgerFilter struct {
	FromDate  *string
	ToDate    *string
	AccountID *string
}

// PostingServicer defines the contract for account-to-category postings.
// Postings are immutable: there is no update operation.
type PostingServicer interface {
	CreatePosting(date, accountID, categoryID string, amountMinor int64, postingType models.PostingType, note string) (*models.Posting, *fx.Resolution, error)
	GetPostingByID(id string) (*models.Posting, error)
	ListPostings(page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.Posting], error)
	DeletePosting(id string) error
}

// TransferServicer defines the contract for account-to-account transfers.
// Transfers are immutable: there is no update operation.
type TransferServicer interface {
	CreateTransfer(date, fromAccountID, toAccountID string, amountFromMinor int64, note string) (*models.Transfer, error)
	GetTransferByID(id string) (*models.Transfer, error)
	ListTransfers(page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.Transfer], error)
	DeleteTransfer(id string) error
}
