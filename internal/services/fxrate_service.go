package services

import (
	"context"
	"strings"

	apperrors "homeledger/internal/errors"
	"homeledger/internal/fx"
	"homeledger/internal/logger"
	"homeledger/internal/models"
	"homeledger/internal/pagination"
	"homeledger/internal/provider"
)

// fxService handles rate observations and exposes the resolver.
type fxService struct {
	store    *fx.GormRateStore
	resolver *fx.Resolver
	registry RegistryServicer
	quoter   provider.Quoter
	source   string
}

// NewFXService creates a new FXServicer. quoter may be nil when no
// external rate source is configured; FetchRates then fails cleanly.
func NewFXService(store *fx.GormRateStore, resolver *fx.Resolver, registry RegistryServicer, quoter provider.Quoter, source string) FXServicer {
	return &fxService{store: store, resolver: resolver, registry: registry, quoter: quoter, source: source}
}

// UpsertRate records a rate observation, overwriting any existing
// observation with the same (from, to, effective_date) key.
func (s *fxService) UpsertRate(from, to string, rate float64, effectiveDate, source, note string) (*models.FXRate, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	if from == to {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "from and to must differ")
	}
	if rate <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "rate must be positive")
	}
	if !IsCivilDate(effectiveDate) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "effective_date must be a YYYY-MM-DD date")
	}
	if source == "" {
		source = "manual"
	}

	if _, err := s.registry.GetCurrency(from); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrCurrencyNotFound, "Currency not found: "+from)
	}
	if _, err := s.registry.GetCurrency(to); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrCurrencyNotFound, "Currency not found: "+to)
	}

	return s.store.Upsert(from, to, rate, effectiveDate, source, note)
}

// ListRates retrieves a paginated list of observations, optionally
// filtered to a pair.
func (s *fxService) ListRates(from, to string, page pagination.PageRequest) (*pagination.PageResponse[models.FXRate], error) {
	page.Defaults()

	rates, total, err := s.store.List(strings.ToUpper(from), strings.ToUpper(to), page.PageSize, page.Offset())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(rates, page.Page, page.PageSize, total)
	return &result, nil
}

// ResolveRate resolves base→quote for a date. A missing rate surfaces as
// RATE_UNAVAILABLE; any 1:1 fallback policy belongs to the posting and
// transfer engines, not here.
func (s *fxService) ResolveRate(base, quote, date string) (*fx.Resolution, error) {
	base = strings.ToUpper(base)
	quote = strings.ToUpper(quote)
	if !IsCivilDate(date) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "date must be a YYYY-MM-DD date")
	}
	return s.resolver.Resolve(base, quote, date)
}

// FetchRates pulls current quotes for the given pairs from the external
// provider and records them as observations for the given date. Partial
// failure is expected; every pair is attempted and per-pair errors are
// collected rather than aborting the batch.
func (s *fxService) FetchRates(ctx context.Context, pairs []CurrencyPair, date string) ([]models.FXRate, []error) {
	if s.quoter == nil {
		return nil, []error{apperrors.WithMessage(apperrors.ErrValidation, "no rate provider is configured")}
	}
	if !IsCivilDate(date) {
		return nil, []error{apperrors.WithMessage(apperrors.ErrValidation, "date must be a YYYY-MM-DD date")}
	}

	var fetched []models.FXRate
	var errs []error
	for _, pair := range pairs {
		rate, err := s.quoter.FetchRate(ctx, pair.From, pair.To)
		if err != nil {
			logger.Get().Warnw("rate fetch failed",
				"from", pair.From,
				"to", pair.To,
				"error", err,
			)
			errs = append(errs, err)
			continue
		}

		row, err := s.UpsertRate(pair.From, pair.To, rate, date, s.source, "")
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fetched = append(fetched, *row)
	}
	return fetched, errs
}
