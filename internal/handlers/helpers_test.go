package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "roboadvisor/internal/errors"
	"roboadvisor/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"app error", apperrors.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT", apperrors.ErrInvalidAmount.Message},
		{"custom message", apperrors.WithMessage(apperrors.ErrInvalidPortfolioEntry, "entry 2: weight missing"), http.StatusBadRequest, "INVALID_PORTFOLIO_ENTRY", "entry 2: weight missing"},
		{"wrapped internal", apperrors.Wrap(apperrors.ErrInternalServer, errors.New("disk on fire")), http.StatusInternalServerError, "INTERNAL_ERROR", apperrors.ErrInternalServer.Message},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", apperrors.ErrInternalServer.Message},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { respondWithError(c, tt.err) })

			rec := doRequest(r, http.MethodGet, "/", "")

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			result := parseJSON(t, rec)
			assertErrorCode(t, result, tt.wantCode)
			if msg := result["error"].(map[string]interface{})["message"]; msg != tt.wantMsg {
				t.Errorf("expected message %q, got %v", tt.wantMsg, msg)
			}
			if strings.Contains(rec.Body.String(), "disk on fire") {
				t.Error("internal error detail leaked into response")
			}
		})
	}
}
