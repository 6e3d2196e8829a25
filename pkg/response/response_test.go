package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/baitboost/catalog/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuccess(t *testing.T) {
	c, w := newContext()
	Success(c, gin.H{"name": "Stradic"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "success", resp.Message)
}

func TestError(t *testing.T) {
	c, w := newContext()
	Error(c, apperrors.ErrProductNotFound)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, apperrors.ErrCodeProductNotFound, resp.Code)
	assert.Nil(t, resp.Data)
}

func TestError_HidesInternalError(t *testing.T) {
	c, w := newContext()
	Error(c, errors.New("dial tcp 10.0.0.3:3306: connection refused"))

	resp := decode(t, w)
	assert.Equal(t, apperrors.ErrCodeInternal, resp.Code)
	assert.Equal(t, "系统内部错误", resp.Message)
}

func TestNewPageData(t *testing.T) {
	p := NewPageData([]int{1, 2}, 41, 1, 20)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPageData([]int{}, 0, 1, 20)
	assert.Equal(t, 0, p.TotalPages)

	p = NewPageData([]int{}, 40, 2, 20)
	assert.Equal(t, 2, p.TotalPages)
}
