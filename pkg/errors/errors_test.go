package errors

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFrom_NilPassesThrough(t *testing.T) {
	assert.Nil(t, From(nil, "Product"))
}

func TestFrom_AppErrorPreserved(t *testing.T) {
	original := NewConflict("slug", "engine-oil")
	mapped := From(original, "Product")
	assert.Same(t, original, mapped)
}

func TestFrom_RecordNotFound(t *testing.T) {
	mapped := From(gorm.ErrRecordNotFound, "Product")
	assert.Equal(t, CodeNotFound, mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.Status)
	assert.Equal(t, "Product not found", mapped.Message)
}

func TestFrom_DuplicatedKey(t *testing.T) {
	mapped := From(gorm.ErrDuplicatedKey, "Product")
	assert.Equal(t, CodeConflict, mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.Status)
}

func TestFrom_DeadlineExceeded(t *testing.T) {
	mapped := From(context.DeadlineExceeded, "Gallery image")
	assert.Equal(t, CodeUpstream, mapped.Code)
}

func TestFrom_UnknownBecomesInternal(t *testing.T) {
	mapped := From(stderrors.New("boom"), "Product")
	assert.Equal(t, CodeInternal, mapped.Code)
	assert.Equal(t, "Internal server error", mapped.Message)
}

func TestNewConflict_NamesField(t *testing.T) {
	err := NewConflict("email", "a@b.com")
	assert.Equal(t, "email 'a@b.com' already exists", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestIsCode(t *testing.T) {
	err := NewNotFound("Blog")
	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(stderrors.New("plain"), CodeNotFound))
}
