package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "homeledger/internal/errors"
	"homeledger/internal/pagination"
	"homeledger/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest is the payload for creating an account.
// The currency is fixed at creation and cannot be changed afterwards.
type CreateAccountRequest struct {
	Name                string  `json:"name" binding:"required"`
	TypeCode            string  `json:"type_code" binding:"required"`
	CurrencyCode        string  `json:"currency_code" binding:"required,currency_code"`
	OpeningBalanceMinor int64   `json:"opening_balance_minor"`
	OpeningDate         string  `json:"opening_date" binding:"omitempty,civil_date"`
	InstitutionID       *string `json:"institution_id"`
	Notes               string  `json:"notes"`
}

// ArchiveRequest toggles an archived flag.
type ArchiveRequest struct {
	Archived *bool `json:"archived" binding:"required"`
}

// AddCardRequest is the payload for attaching a payment card to an account.
type AddCardRequest struct {
	CardTypeCode string `json:"card_type_code"`
	Network      string `json:"network"`
	NameOnCard   string `json:"name_on_card"`
	ExpiryMonth  int    `json:"expiry_month"`
	ExpiryYear   int    `json:"expiry_year"`
	PanLast4     string `json:"pan_last4" binding:"omitempty,len=4,numeric"`
}

// CreateAccount handles the creation of a new account
// @Summary     Create an account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} MessageResponse
// @Failure     400 {object} ErrorResponse
// @Failure     409 {object} ErrorResponse
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(
		req.Name,
		req.TypeCode,
		req.CurrencyCode,
		req.OpeningBalanceMinor,
		req.OpeningDate,
		req.InstitutionID,
		req.Notes,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// ListAccounts handles listing accounts
// @Summary     List accounts
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       include_archived query bool false "Include archived accounts"
// @Success     200 {object} MessageResponse
// @Router      /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	includeArchived := c.Query("include_archived") == "true"

	result, err := h.accountService.ListAccounts(page, includeArchived)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAccountByID handles retrieving a single account
// @Summary     Get account by ID
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// SetArchived handles archiving or unarchiving an account
// @Summary     Archive or unarchive an account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Param       request body ArchiveRequest true "Archived flag"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse
// @Router      /accounts/{id} [patch]
func (h *AccountHandler) SetArchived(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	account, err := h.accountService.SetArchived(id, *req.Archived)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// AddCard handles attaching a payment card to an account
// @Summary     Add a payment card
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Param       request body AddCardRequest true "Card details"
// @Success     201 {object} MessageResponse
// @Failure     404 {object} ErrorResponse
// @Router      /accounts/{id}/cards [post]
func (h *AccountHandler) AddCard(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	card, err := h.accountService.AddCard(id, req.CardTypeCode, req.Network, req.NameOnCard, req.ExpiryMonth, req.ExpiryYear, req.PanLast4)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"card": card})
}

// ListCards handles listing an account's payment cards
// @Summary     List payment cards
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse
// @Router      /accounts/{id}/cards [get]
func (h *AccountHandler) ListCards(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	cards, err := h.accountService.ListCards(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}
