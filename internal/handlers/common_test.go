package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=2"`
}

func postJSON(body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBindJSON_Valid(t *testing.T) {
	c, _ := postJSON(`{"email":"a@b.com","name":"Jo"}`)

	var req sampleRequest
	assert.True(t, bindJSON(c, &req))
	assert.Equal(t, "a@b.com", req.Email)
}

func TestBindJSON_ValidationFailureReturns422(t *testing.T) {
	c, w := postJSON(`{"email":"not-an-email","name":"x"}`)

	var req sampleRequest
	assert.False(t, bindJSON(c, &req))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Status bool              `json:"status"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Status)
	assert.Contains(t, body.Errors, "email")
	assert.Contains(t, body.Errors, "name")
}

func TestBindJSON_MalformedBodyReturns400(t *testing.T) {
	c, w := postJSON(`{not json`)

	var req sampleRequest
	assert.False(t, bindJSON(c, &req))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	assert.Equal(t, uint(42), parseID(c))

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	assert.Equal(t, uint(0), parseID(c))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
