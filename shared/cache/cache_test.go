package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	raw, err := encode("unit:get:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("unit:get:1"), raw)

	raw, err = encode(map[string]any{"price": "150.00"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"150.00"}`, string(raw))

	_, err = encode(make(chan int))
	assert.Error(t, err)
}

func TestExpiration(t *testing.T) {
	assert.Equal(t, time.Duration(0), expiration(0))
	assert.Equal(t, time.Duration(0), expiration(-5))
	assert.Equal(t, 90*time.Second, expiration(90))
}
