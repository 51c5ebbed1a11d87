package cryptoenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDeterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	k1 := Derive("password", salt)
	k2 := Derive("password", salt)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, KeyLen)

	k3 := Derive("different", salt)
	assert.NotEqual(t, k1, k3)
}

func TestSealOpenRoundTrip(t *testing.T) {
	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	envelope, err := Seal("pw", plaintext)
	require.NoError(t, err)

	got, err := Open("pw", envelope)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestSealProducesFreshSaltAndIV(t *testing.T) {
	e1, err := Seal("pw", []byte("data"))
	require.NoError(t, err)
	e2, err := Seal("pw", []byte("data"))
	require.NoError(t, err)

	assert.NotEqual(t, e1.Salt, e2.Salt)
	assert.NotEqual(t, e1.IV, e2.IV)
	assert.NotEqual(t, e1.Ciphertext, e2.Ciphertext)
}

func TestWrongPasswordProducesGarbageNotError(t *testing.T) {
	envelope, err := Seal("correct", []byte("secret payload"))
	require.NoError(t, err)

	got, err := Open("incorrect", envelope)
	require.NoError(t, err) // CTR mode never fails to decrypt; it just yields garbage
	assert.NotEqual(t, []byte("secret payload"), got)
}

func TestEnvelopeEncodeDecodeRoundTrip(t *testing.T) {
	envelope, err := Seal("pw", []byte("hello world"))
	require.NoError(t, err)

	buf := envelope.Encode()
	decoded, err := DecodeEnvelope(buf)
	require.NoError(t, err)

	assert.Equal(t, envelope.Salt, decoded.Salt)
	assert.Equal(t, envelope.IV, decoded.IV)
	assert.Equal(t, envelope.Ciphertext, decoded.Ciphertext)
}

func TestDecodeEnvelopeRejectsBadHeader(t *testing.T) {
	_, err := DecodeEnvelope([]byte{1, 2})
	require.Error(t, err)

	_, err = DecodeEnvelope([]byte{255, 255, 255, 255})
	require.Error(t, err)
}
