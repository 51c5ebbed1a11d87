package imgerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAndIs(t *testing.T) {
	err := New(RecipeInvalid, "bad step %q", "xyz")
	assert.True(t, Is(err, RecipeInvalid))
	assert.False(t, Is(err, InputInvalid))
	assert.Contains(t, err.Error(), "bad step")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(CryptoFailure, cause, "deriving key")

	assert.True(t, Is(err, CryptoFailure))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "underlying")
}

func TestIsFalseForPlainError(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), InputInvalid))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "InputInvalid", InputInvalid.String())
	assert.Equal(t, "DimensionDrift", DimensionDrift.String())
}
