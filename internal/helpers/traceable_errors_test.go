package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNil(t *testing.T) {
	var err error
	assert.True(t, IsNil(err))

	var traceableErr Error = NilError
	assert.True(t, IsNil(traceableErr))
	assert.True(t, IsNil(&traceableErr))
	assert.False(t, traceableErr.HasError())
}

func TestWrap(t *testing.T) {
	assert.True(t, IsNil(Wrap(nil)))

	err := Wrap(errors.New("boom"))
	assert.False(t, IsNil(err))
	assert.True(t, err.HasError())
	assert.Equal(t, "boom", err.Error())
	assert.Contains(t, err.String(), "boom")

	// wrapping an Error keeps the original trace
	assert.Equal(t, err, Wrap(err))
}

func TestJoin(t *testing.T) {
	assert.True(t, IsNil(Join(NilError, NilError)))

	a := Errorf("a %v", 1)
	b := Errorf("b %v", 2)
	joined := Join(a, NilError, b)
	assert.Equal(t, 2, joined.NumErrors())
	assert.Equal(t, "a 1; b 2", joined.Error())
	assert.Equal(t, a.First(), joined.First())
}
