package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "homeledger/internal/errors"
	"homeledger/internal/pagination"
	"homeledger/internal/services"
)

// FXRateHandler handles exchange rate requests.
type FXRateHandler struct {
	fxService services.FXServicer
}

// NewFXRateHandler creates a new FXRateHandler.
func NewFXRateHandler(fxService services.FXServicer) *FXRateHandler {
	return &FXRateHandler{fxService: fxService}
}

// UpsertRateRequest is the payload for recording a rate observation. A second
// observation for the same pair and effective date overwrites the first.
type UpsertRateRequest struct {
	From          string  `json:"from" binding:"required,currency_code"`
	To            string  `json:"to" binding:"required,currency_code"`
	Rate          float64 `json:"rate" binding:"required,gt=0"`
	EffectiveDate string  `json:"effective_date" binding:"required,civil_date"`
	Source        string  `json:"source" binding:"required,rate_source"`
	Note          string  `json:"note" binding:"omitempty,max=500"`
}

// FetchRatesRequest is the payload for fetching rates from the external
// provider and recording them for a given effective date.
type FetchRatesRequest struct {
	Pairs []services.CurrencyPair `json:"pairs" binding:"required,min=1,dive"`
	Date  string                  `json:"date" binding:"required,civil_date"`
}

// UpsertRate handles recording a rate observation
// @Summary     Record an exchange rate
// @Description Record a rate observation for a currency pair and effective date, overwriting any existing observation for the same key.
// @Tags        fx
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpsertRateRequest true "Rate details"
// @Success     201 {object} MessageResponse
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /fx/rates [post]
func (h *FXRateHandler) UpsertRate(c *gin.Context) {
	var req UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	rate, err := h.fxService.UpsertRate(req.From, req.To, req.Rate, req.EffectiveDate, req.Source, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"rate": rate})
}

// ListRates handles listing rate observations
// @Summary     List exchange rates
// @Tags        fx
// @Produce     json
// @Security    BearerAuth
// @Param       from query string false "Filter by base currency"
// @Param       to   query string false "Filter by quote currency"
// @Success     200 {object} MessageResponse
// @Router      /fx/rates [get]
func (h *FXRateHandler) ListRates(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	result, err := h.fxService.ListRates(c.Query("from"), c.Query("to"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ResolveRate handles resolving an effective rate for a pair and date
// @Summary     Resolve an exchange rate
// @Description Resolve the effective rate for a currency pair on a date, trying direct, reverse, and pivot triangulation in order. The response names how the rate was derived.
// @Tags        fx
// @Produce     json
// @Security    BearerAuth
// @Param       base  query string true "Base currency"
// @Param       quote query string true "Quote currency"
// @Param       date  query string true "Date (YYYY-MM-DD)"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse
// @Failure     422 {object} ErrorResponse
// @Router      /fx/resolve [get]
func (h *FXRateHandler) ResolveRate(c *gin.Context) {
	base := c.Query("base")
	quote := c.Query("quote")
	date := c.Query("date")

	resolution, err := h.fxService.ResolveRate(base, quote, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resolution": resolution})
}

// FetchRates handles fetching rates from the external provider
// @Summary     Fetch exchange rates from the provider
// @Description Fetch current rates for the requested pairs from the external provider and record them for the given effective date. Pairs that fail are reported alongside the rates that succeeded.
// @Tags        fx
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body FetchRatesRequest true "Pairs and effective date"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse
// @Router      /fx/fetch [post]
func (h *FXRateHandler) FetchRates(c *gin.Context) {
	var req FetchRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	rates, fetchErrs := h.fxService.FetchRates(c.Request.Context(), req.Pairs, req.Date)

	failures := make([]string, 0, len(fetchErrs))
	for _, ferr := range fetchErrs {
		failures = append(failures, ferr.Error())
	}

	c.JSON(http.StatusOK, gin.H{
		"rates":    rates,
		"failures": failures,
	})
}
