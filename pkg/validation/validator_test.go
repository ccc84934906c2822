package validation

import (
	"errors"
	"sync"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var initOnce sync.Once

func engine(t *testing.T) *validator.Validate {
	t.Helper()
	initOnce.Do(Init)
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

type sample struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func TestDetailsUseJSONTagNames(t *testing.T) {
	v := engine(t)

	err := v.Struct(sample{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 8 characters long", details["password"])
	assert.NotContains(t, details, "Email", "struct field names must not leak")
}

func TestDetailsRequired(t *testing.T) {
	v := engine(t)

	details := ToDetails(v.Struct(sample{}))
	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "is required", details["password"])
}

func TestDetailsOpaqueFallback(t *testing.T) {
	details := ToDetails(errors.New("driver: bad connection"))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, details)
}

func TestDetailsNil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
