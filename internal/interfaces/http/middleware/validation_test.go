package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markethub/backend/internal/interfaces/http/dto"
)

type validatedRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Quantity int    `json:"quantity" binding:"gte=1"`
}

func bindAndFormat(t *testing.T, body string) []dto.ValidationDetail {
	t.Helper()
	gin.SetMode(gin.TestMode)
	SetupValidator()

	var details []dto.ValidationDetail
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var req validatedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			details = FormatValidationErrors(err)
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return details
}

func TestFormatValidationErrors_UsesJSONFieldNames(t *testing.T) {
	details := bindAndFormat(t, `{"email":"not-an-email","quantity":0}`)

	require.Len(t, details, 2)
	byField := map[string]string{}
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "Invalid email format", byField["email"])
	assert.Equal(t, "Must be greater than or equal to 1", byField["quantity"])
}

func TestFormatValidationErrors_RequiredField(t *testing.T) {
	details := bindAndFormat(t, `{"quantity":3}`)

	require.Len(t, details, 1)
	assert.Equal(t, "email", details[0].Field)
	assert.Equal(t, "This field is required", details[0].Message)
}

func TestFormatValidationErrors_MalformedJSON(t *testing.T) {
	details := bindAndFormat(t, `{"email":`)
	assert.Empty(t, details)
}
