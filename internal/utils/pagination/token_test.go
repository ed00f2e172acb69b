package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	accrualDate := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 2, 1, 10, 30, 15, 123456789, time.UTC)

	token := EncodeToken(accrualDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreated, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, accrualDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := DecodeToken("not-base64-%%%")
	assert.Error(t, err)

	// Valid base64 but wrong shape
	_, _, err = DecodeToken("aGVsbG8=")
	assert.Error(t, err)
}
