package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/reseller/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationTestRequest struct {
	Code   string          `json:"code" binding:"required,max=5"`
	Role   string          `json:"role" binding:"omitempty,oneof=agent principal"`
	Amount decimal.Decimal `json:"amount" binding:"gte=0"`
}

func newValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	r := gin.New()
	r.Use(RequestID())
	r.POST("/test", func(c *gin.Context) {
		var req validationTestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(req.Amount))
	})
	return r
}

func TestHandleValidationError(t *testing.T) {
	router := newValidationRouter()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantFields []string
	}{
		{
			name:       "valid request",
			body:       `{"code":"A1","role":"agent","amount":"12.50"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "field names come from json tags",
			body:       `{"code":"TOOLONG","role":"vendor"}`,
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"code", "role"},
		},
		{
			name:       "negative decimal is rejected",
			body:       `{"code":"A1","amount":"-1"}`,
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"amount"},
		},
		{
			name:       "malformed json",
			body:       `{"code":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				return
			}

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.RequestID)

			fields := make([]string, len(resp.Error.Details))
			for i, d := range resp.Error.Details {
				fields[i] = d.Field
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}
