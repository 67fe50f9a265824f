package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOrNil(t *testing.T) {
	assert.Nil(t, StringOrNil(""))
	assert.Nil(t, StringOrNil(" \t\n"))
	assert.Equal(t, "rules", *StringOrNil("  rules "))
}

func TestNilIfEmpty(t *testing.T) {
	assert.Nil(t, NilIfEmpty(nil))
	assert.Nil(t, NilIfEmpty(Ptr("   ")))
	assert.Equal(t, "x", *NilIfEmpty(Ptr("x")))
}

func TestOrZero(t *testing.T) {
	assert.Equal(t, "", OrZero[string](nil))
	assert.Equal(t, 7, OrZero(Ptr(7)))
}
