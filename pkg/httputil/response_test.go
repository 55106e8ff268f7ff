package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/password-analyzer/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRespondWithSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithSuccess(c, gin.H{"score": 5})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, map[string]interface{}{"score": float64(5)}, resp.Data)
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{errors.BadRequest("length exceeds maximum", fmt.Errorf("secret detail")), http.StatusBadRequest, "length exceeds maximum"},
		{fmt.Errorf("wrapped: %w", errors.NotFound("generated password", nil)), http.StatusNotFound, "generated password not found"},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		RespondWithError(c, tt.err)

		assert.Equal(t, tt.status, w.Code)
		resp := decode(t, w)
		assert.Equal(t, StatusError, resp.Status)
		assert.Equal(t, tt.message, resp.Message)
	}
}
