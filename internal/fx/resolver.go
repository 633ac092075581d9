// Package fx resolves exchange rates between currencies for a given date.
//
// Resolution tries, in strict order: same currency, direct observation,
// reverse observation (reciprocal), then triangulation through a single
// configured pivot currency. The resolver never reads the clock and never
// substitutes a default rate; a missing rate is reported as a typed error
// and any fallback policy belongs to the caller.
package fx

import (
	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
)

// Provenance is the method by which a rate was obtained.
type Provenance string

const (
	ProvenanceSameCurrency Provenance = "same_currency"
	ProvenanceDirect       Provenance = "direct"
	ProvenanceReverse      Provenance = "reverse"
	ProvenanceTriangulated Provenance = "triangulated"
	// ProvenanceMissingFallback marks the recorded, visible degraded state
	// where a caller proceeded at rate 1 because no rate could be resolved.
	// The resolver itself never returns it.
	ProvenanceMissingFallback Provenance = "missing_1_1"
)

// Resolution is a resolved rate with its provenance. EffectiveDate is the
// observation date the rate came from ("" for same-currency and for
// triangulated rates, whose two legs may come from different dates).
type Resolution struct {
	Rate          float64    `json:"rate"`
	Provenance    Provenance `json:"provenance"`
	EffectiveDate string     `json:"effective_date,omitempty"`
}

// RateStore is the point-lookup interface the resolver needs from the
// rate storage layer.
type RateStore interface {
	// FindLatestOnOrBefore returns the observation for (from, to) with the
	// greatest effective_date <= date, or (nil, nil) when none exists.
	FindLatestOnOrBefore(from, to, date string) (*models.FXRate, error)
}

// Resolver resolves rates against a RateStore using one pivot currency.
type Resolver struct {
	store RateStore
	pivot string
}

// NewResolver creates a Resolver. pivot may be empty to disable
// triangulation.
func NewResolver(store RateStore, pivot string) *Resolver {
	return &Resolver{store: store, pivot: pivot}
}

// Pivot returns the configured pivot currency code.
func (r *Resolver) Pivot() string { return r.pivot }

// Resolve returns the rate that converts base into quote on the given
// date. Returns ErrRateUnavailable when no direct, reverse, or pivoted
// path exists.
func (r *Resolver) Resolve(base, quote, date string) (*Resolution, error) {
	res, err := r.resolvePair(base, quote, date)
	if err != nil || res != nil {
		return res, err
	}

	// Triangulation through the pivot, as two explicit non-recursive legs.
	// Multi-hop chains through a second pivot are deliberately impossible.
	if r.pivot != "" && base != r.pivot && quote != r.pivot {
		leg1, err := r.resolvePair(base, r.pivot, date)
		if err != nil {
			return nil, err
		}
		leg2, err := r.resolvePair(r.pivot, quote, date)
		if err != nil {
			return nil, err
		}
		if leg1 != nil && leg2 != nil {
			return &Resolution{
				Rate:       leg1.Rate * leg2.Rate,
				Provenance: ProvenanceTriangulated,
			}, nil
		}
	}

	return nil, apperrors.ErrRateUnavailable
}

// resolvePair runs the non-triangulating steps: same currency, direct,
// reverse. Returns (nil, nil) when no observation exists for the pair.
func (r *Resolver) resolvePair(base, quote, date string) (*Resolution, error) {
	if base == quote {
		return &Resolution{Rate: 1, Provenance: ProvenanceSameCurrency, EffectiveDate: date}, nil
	}

	direct, err := r.store.FindLatestOnOrBefore(base, quote, date)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if direct != nil {
		return &Resolution{Rate: direct.Rate, Provenance: ProvenanceDirect, EffectiveDate: direct.EffectiveDate}, nil
	}

	reverse, err := r.store.FindLatestOnOrBefore(quote, base, date)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if reverse != nil && reverse.Rate != 0 {
		return &Resolution{Rate: 1 / reverse.Rate, Provenance: ProvenanceReverse, EffectiveDate: reverse.EffectiveDate}, nil
	}

	return nil, nil
}
