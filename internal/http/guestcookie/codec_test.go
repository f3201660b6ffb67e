package guestcookie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := NewCodec([]byte("secret"), "guest", false)
	id := c.NewID()

	v := c.Encode(id)
	got, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestDecodeRejectsTamperedValue(t *testing.T) {
	c := NewCodec([]byte("secret"), "guest", false)
	other := NewCodec([]byte("another"), "guest", false)

	v := c.Encode(c.NewID())

	_, err := other.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = c.Decode("not-a-cookie")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = c.Decode("not-a-uuid." + sign([]byte("secret"), "not-a-uuid"))
	assert.ErrorIs(t, err, ErrInvalid)
}
