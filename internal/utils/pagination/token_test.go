package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := Cursor{
		EntryDate: time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:        "0b8f7c4e-1f7a-4c1e-9a55-3f2f0b0f7f11",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token)

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, cursor, decoded)
}

func TestEncodeTokenNormalisesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	local := time.Date(2024, 1, 2, 3, 0, 0, 0, loc)

	decoded, err := DecodeToken(EncodeToken(Cursor{EntryDate: local, CreatedAt: local, ID: "x"}))
	require.NoError(t, err)
	assert.True(t, local.Equal(decoded.EntryDate))
	assert.Equal(t, time.UTC, decoded.CreatedAt.Location())
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.StdEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, err = DecodeToken(noSeparator)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.StdEncoding.EncodeToString([]byte("notadate|2023-05-15T14:30:45Z|id"))
	_, err = DecodeToken(badDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry date parse")

	badCreated := base64.StdEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|nope|id"))
	_, err = DecodeToken(badCreated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}
