package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
	"homeledger/internal/services"
)

// RegistryHandler handles the keyed registries: currencies, account types,
// institutions, and card types.
type RegistryHandler struct {
	registryService services.RegistryServicer
}

// NewRegistryHandler creates a new RegistryHandler.
func NewRegistryHandler(registryService services.RegistryServicer) *RegistryHandler {
	return &RegistryHandler{registryService: registryService}
}

// CreateCurrencyRequest is the payload for registering a currency.
type CreateCurrencyRequest struct {
	Code          string `json:"code" binding:"required,currency_code"`
	Name          string `json:"name" binding:"required"`
	DecimalDigits *int32 `json:"decimal_digits" binding:"required,gte=0,lte=4"`
	Symbol        string `json:"symbol" binding:"omitempty,max=8"`
}

// EnabledRequest is the payload for enabling or disabling a registry entry.
type EnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// CreateAccountTypeRequest is the payload for registering an account type.
type CreateAccountTypeRequest struct {
	Code   string `json:"code" binding:"required,min=2,max=32"`
	Name   string `json:"name" binding:"required"`
	Nature string `json:"nature" binding:"required,type_nature"`
}

// CreateInstitutionRequest is the payload for registering an institution.
type CreateInstitutionRequest struct {
	Name    string `json:"name" binding:"required"`
	Country string `json:"country" binding:"omitempty,len=2"`
	Abbr    string `json:"abbr" binding:"omitempty,max=16"`
	Website string `json:"website" binding:"omitempty,url"`
}

// CreateCardTypeRequest is the payload for registering a card type.
type CreateCardTypeRequest struct {
	Code     string `json:"code" binding:"required,min=2,max=32"`
	Name     string `json:"name" binding:"required"`
	Network  string `json:"network" binding:"omitempty,max=32"`
	Category string `json:"category" binding:"omitempty,max=32"`
}

// CreateCurrency handles registering a currency
// @Summary     Register a currency
// @Tags        registry
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCurrencyRequest true "Currency details"
// @Success     201 {object} MessageResponse
// @Failure     400 {object} ErrorResponse
// @Failure     409 {object} ErrorResponse
// @Router      /currencies [post]
func (h *RegistryHandler) CreateCurrency(c *gin.Context) {
	var req CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	currency, err := h.registryService.CreateCurrency(req.Code, req.Name, *req.DecimalDigits, req.Symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"currency": currency})
}

// ListCurrencies handles listing currencies
// @Summary     List currencies
// @Tags        registry
// @Produce     json
// @Security    BearerAuth
// @Param       enabled_only query bool false "Only enabled currencies"
// @Success     200 {object} MessageResponse
// @Router      /currencies [get]
func (h *RegistryHandler) ListCurrencies(c *gin.Context) {
	enabledOnly := c.Query("enabled_only") == "true"

	currencies, err := h.registryService.ListCurrencies(enabledOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currencies": currencies})
}

// SetCurrencyEnabled handles enabling or disabling a currency
// @Summary     Enable or disable a currency
// @Tags        registry
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       code query string true "Currency code"
// @Param       request body EnabledRequest true "Enabled flag"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse
// @Router      /currencies/{code} [patch]
func (h *RegistryHandler) SetCurrencyEnabled(c *gin.Context) {
	var req EnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	currency, err := h.registryService.SetCurrencyEnabled(c.Param("code"), *req.Enabled)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currency": currency})
}

// CreateAccountType handles registering an account type
// @Summary     Register an account type
// @Tags        registry
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAccountTypeRequest true "Account type details"
// @Success     201 {object} MessageResponse
// @Failure     400 {object} ErrorResponse
// @Failure     409 {object} ErrorResponse
// @Router      /account-types [post]
func (h *RegistryHandler) CreateAccountType(c *gin.Context) {
	var req CreateAccountTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	accountType, err := h.registryService.CreateAccountType(req.Code, req.Name, models.AccountTypeNature(req.Nature))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account_type": accountType})
}

// ListAccountTypes handles listing account types
// @Summary     List account types
// @Tags        registry
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse
// @Router      /account-types [get]
func (h *RegistryHandler) ListAccountTypes(c *gin.Context) {
	accountTypes, err := h.registryService.ListAccountTypes()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account_types": accountTypes})
}

// CreateInstitution handles registering an institution
// @Summary     Register an institution
// @Tags        registry
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInstitutionRequest true "Institution details"
// @Success     201 {object} MessageResponse
// @Failure     400 {object} ErrorResponse
// @Failure     409 {object} ErrorResponse
// @Router      /institutions [post]
func (h *RegistryHandler) CreateInstitution(c *gin.Context) {
	var req CreateInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	institution, err := h.registryService.CreateInstitution(req.Name, req.Country, req.Abbr, req.Website)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"institution": institution})
}

// ListInstitutions handles listing institutions
// @Summary     List institutions
// @Tags        registry
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse
// @Router      /institutions [get]
func (h *RegistryHandler) ListInstitutions(c *gin.Context) {
	institutions, err := h.registryService.ListInstitutions()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"institutions": institutions})
}

// CreateCardType handles registering a card type
// @Summary     Register a card type
// @Tags        registry
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCardTypeRequest true "Card type details"
// @Success     201 {object} MessageResponse
// @Failure     400 {object} ErrorResponse
// @Failure     409 {object} ErrorResponse
// @Router      /card-types [post]
func (h *RegistryHandler) CreateCardType(c *gin.Context) {
	var req CreateCardTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	cardType, err := h.registryService.CreateCardType(req.Code, req.Name, req.Network, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"card_type": cardType})
}

// ListCardTypes handles listing card types
// @Summary     List card types
// @Tags        registry
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse
// @Router      /card-types [get]
func (h *RegistryHandler) ListCardTypes(c *gin.Context) {
	cardTypes, err := h.registryService.ListCardTypes()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"card_types": cardTypes})
}
