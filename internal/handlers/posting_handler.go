package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
	"homeledger/internal/pagination"
	"homeledger/internal/services"
)

// PostingHandler handles ledger posting requests.
type PostingHandler struct {
	postingService services.PostingServicer
}

// NewPostingHandler creates a new PostingHandler.
func NewPostingHandler(postingService services.PostingServicer) *PostingHandler {
	return &PostingHandler{postingService: postingService}
}

// CreatePostingRequest is the payload for recording a posting. The amount is
// in minor units of the account's currency.
type CreatePostingRequest struct {
	Date        string `json:"date" binding:"required,civil_date"`
	AccountID   string `json:"account_id" binding:"required,uuid"`
	CategoryID  string `json:"category_id" binding:"required,uuid"`
	AmountMinor int64  `json:"amount_minor" binding:"required,gt=0"`
	Type        string `json:"type" binding:"required,posting_type"`
	Note        string `json:"note" binding:"omitempty,max=500"`
}

// ledgerFilterFromQuery builds a LedgerFilter from the common query
// parameters shared by posting and transfer listings.
func ledgerFilterFromQuery(c *gin.Context) (services.LedgerFilter, error) {
	var filter services.LedgerFilter
	if v := c.Query("from_date"); v != "" {
		if !services.IsCivilDate(v) {
			return filter, apperrors.WithMessage(apperrors.ErrValidation, "from_date must be YYYY-MM-DD")
		}
		filter.FromDate = &v
	}
	if v := c.Query("to_date"); v != "" {
		if !services.IsCivilDate(v) {
			return filter, apperrors.WithMessage(apperrors.ErrValidation, "to_date must be YYYY-MM-DD")
		}
		filter.ToDate = &v
	}
	if v := c.Query("account_id"); v != "" {
		filter.AccountID = &v
	}
	return filter, nil
}

// CreatePosting handles recording a posting
// @Summary     Record a posting
// @Description Record an expense or income posting against an account and category. The response includes how the category-currency amount was derived.
// @Tags        postings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePostingRequest true "Posting details"
// @Success     201 {object} MessageResponse
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Failure     422 {object} ErrorResponse
// @Router      /postings [post]
func (h *PostingHandler) CreatePosting(c *gin.Context) {
	var req CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	posting, resolution, err := h.postingService.CreatePosting(req.Date, req.AccountID, req.CategoryID, req.AmountMinor, models.PostingType(req.Type), req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"posting":    posting,
		"conversion": resolution,
	})
}

// GetPostingByID handles retrieving a single posting
// @Summary     Get posting by ID
// @Tags        postings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Posting ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse
// @Router      /postings/{id} [get]
func (h *PostingHandler) GetPostingByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	posting, err := h.postingService.GetPostingByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posting": posting})
}

// ListPostings handles listing postings
// @Summary     List postings
// @Tags        postings
// @Produce     json
// @Security    BearerAuth
// @Param       from_date  query string false "Earliest date (inclusive)"
// @Param       to_date    query string false "Latest date (inclusive)"
// @Param       account_id query string false "Filter by account"
// @Success     200 {object} MessageResponse
// @Router      /postings [get]
func (h *PostingHandler) ListPostings(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	filter, err := ledgerFilterFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.postingService.ListPostings(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeletePosting handles deleting a posting
// @Summary     Delete a posting
// @Tags        postings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Posting ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse
// @Router      /postings/{id} [delete]
func (h *PostingHandler) DeletePosting(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.postingService.DeletePosting(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Posting deleted successfully"})
}
