package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "homeledger/internal/errors"
	"homeledger/internal/fx"
	"homeledger/internal/models"
	"homeledger/internal/pagination"
	"homeledger/internal/services"
	"homeledger/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// --- shared test helpers ---

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

// --- mock posting service ---

type mockPostingService struct {
	createPostingFn func(date, accountID, categoryID string, amountMinor int64, postingType models.PostingType, note string) (*models.Posting, *fx.Resolution, error)
	getPostingFn    func(id string) (*models.Posting, error)
	listPostingsFn  func(page pagination.PageRequest, filter services.LedgerFilter) (*pagination.PageResponse[models.Posting], error)
	deletePostingFn func(id string) error
}

func (m *mockPostingService) CreatePosting(date, accountID, categoryID string, amountMinor int64, postingType models.PostingType, note string) (*models.Posting, *fx.Resolution, error) {
	if m.createPostingFn != nil {
		return m.createPostingFn(date, accountID, categoryID, amountMinor, postingType, note)
	}
	return &models.Posting{}, &fx.Resolution{Rate: 1, Provenance: fx.ProvenanceSameCurrency}, nil
}

func (m *mockPostingService) GetPostingByID(id string) (*models.Posting, error) {
	if m.getPostingFn != nil {
		return m.getPostingFn(id)
	}
	return &models.Posting{}, nil
}

func (m *mockPostingService) ListPostings(page pagination.PageRequest, filter services.LedgerFilter) (*pagination.PageResponse[models.Posting], error) {
	if m.listPostingsFn != nil {
		return m.listPostingsFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.Posting{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockPostingService) DeletePosting(id string) error {
	if m.deletePostingFn != nil {
		return m.deletePostingFn(id)
	}
	return nil
}

var _ services.PostingServicer = (*mockPostingService)(nil)

func setupPostingRouter(handler *PostingHandler) *gin.Engine {
	r := gin.New()
	r.POST("/postings", handler.CreatePosting)
	r.GET("/postings", handler.ListPostings)
	r.GET("/postings/:id", handler.GetPostingByID)
	r.DELETE("/postings/:id", handler.DeletePosting)
	return r
}

const validPostingBody = `{"date":"2025-06-15","account_id":"0198a5e4-0000-7000-8000-000000000010","category_id":"0198a5e4-0000-7000-8000-000000000011","amount_minor":2500,"type":"expense"}`

func TestPostingHandler_CreatePosting(t *testing.T) {
	t.Run("returns 201 with conversion metadata", func(t *testing.T) {
		svc := &mockPostingService{
			createPostingFn: func(date, accountID, categoryID string, amountMinor int64, postingType models.PostingType, note string) (*models.Posting, *fx.Resolution, error) {
				return &models.Posting{
						Date:                date,
						AmountMinor:         amountMinor,
						CategoryAmountMinor: 675,
						Type:                postingType,
					}, &fx.Resolution{
						Rate:       0.27,
						Provenance: fx.ProvenanceDirect,
					}, nil
			},
		}
		r := setupPostingRouter(NewPostingHandler(svc))

		rec := doRequest(r, "POST", "/postings", validPostingBody)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		conversion := result["conversion"].(map[string]interface{})
		if conversion["provenance"] != "direct" {
			t.Errorf("expected provenance direct, got %v", conversion["provenance"])
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		r := setupPostingRouter(NewPostingHandler(&mockPostingService{}))

		rec := doRequest(r, "POST", "/postings",
			`{"date":"15/06/2025","account_id":"0198a5e4-0000-7000-8000-000000000010","category_id":"0198a5e4-0000-7000-8000-000000000011","amount_minor":2500,"type":"expense"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad type", func(t *testing.T) {
		r := setupPostingRouter(NewPostingHandler(&mockPostingService{}))

		rec := doRequest(r, "POST", "/postings",
			`{"date":"2025-06-15","account_id":"0198a5e4-0000-7000-8000-000000000010","category_id":"0198a5e4-0000-7000-8000-000000000011","amount_minor":2500,"type":"transfer"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 422 when rate unavailable", func(t *testing.T) {
		svc := &mockPostingService{
			createPostingFn: func(string, string, string, int64, models.PostingType, string) (*models.Posting, *fx.Resolution, error) {
				return nil, nil, apperrors.ErrRateUnavailable
			},
		}
		r := setupPostingRouter(NewPostingHandler(svc))

		rec := doRequest(r, "POST", "/postings", validPostingBody)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		errBody := result["error"].(map[string]interface{})
		if errBody["code"] != "RATE_UNAVAILABLE" {
			t.Errorf("expected code RATE_UNAVAILABLE, got %v", errBody["code"])
		}
	})
}

func TestPostingHandler_ListPostings(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		var captured services.LedgerFilter
		svc := &mockPostingService{
			listPostingsFn: func(_ pagination.PageRequest, filter services.LedgerFilter) (*pagination.PageResponse[models.Posting], error) {
				captured = filter
				resp := pagination.NewPageResponse([]models.Posting{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupPostingRouter(NewPostingHandler(svc))

		rec := doRequest(r, "GET", "/postings?from_date=2025-06-01&to_date=2025-06-30", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if captured.FromDate == nil || *captured.FromDate != "2025-06-01" {
			t.Errorf("expected from_date filter, got %v", captured.FromDate)
		}
		if captured.ToDate == nil || *captured.ToDate != "2025-06-30" {
			t.Errorf("expected to_date filter, got %v", captured.ToDate)
		}
	})

	t.Run("returns 400 on malformed from_date", func(t *testing.T) {
		r := setupPostingRouter(NewPostingHandler(&mockPostingService{}))

		rec := doRequest(r, "GET", "/postings?from_date=June", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPostingHandler_DeletePosting(t *testing.T) {
	t.Run("returns 400 on malformed ID", func(t *testing.T) {
		r := setupPostingRouter(NewPostingHandler(&mockPostingService{}))

		rec := doRequest(r, "DELETE", "/postings/not-a-uuid", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockPostingService{
			deletePostingFn: func(string) error { return apperrors.ErrPostingNotFound },
		}
		r := setupPostingRouter(NewPostingHandler(svc))

		rec := doRequest(r, "DELETE", "/postings/0198a5e4-0000-7000-8000-000000000012", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
