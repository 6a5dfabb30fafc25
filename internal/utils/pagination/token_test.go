package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCursorRoundTrip(t *testing.T) {
	cur := Cursor{
		EntryDate: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC),
	}

	token := cur.Encode()
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := Decode(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, cur.EntryDate, decoded.EntryDate, "Entry date should match after decode")
	assert.Equal(t, cur.CreatedAt, decoded.CreatedAt, "Created at time should match after decode")

	// Zero time values
	zeroDecoded, err := Decode(Cursor{}.Encode())
	assert.NoError(t, err, "Decoding zero cursor should not return an error")
	assert.Equal(t, Cursor{}, zeroDecoded, "Zero cursor should match after decode")

	// Current time values
	now := time.Now().UTC()
	nowDecoded, err := Decode(Cursor{EntryDate: now, CreatedAt: now}.Encode())
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(nowDecoded.EntryDate), "Current date should match after decode")
	assert.True(t, now.Equal(nowDecoded.CreatedAt), "Current time should match after decode")
}

func TestDecodeError(t *testing.T) {
	// Invalid base64
	_, err := Decode("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Invalid format (missing separator)
	invalidToken := "MjAyMy0wNS0xNVQwMDowMDowMFo=" // Base64 encoded date without separator
	_, err = Decode(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "missing separator", "Error should mention the separator")

	// Invalid date format
	invalidDateToken := "bm90YWRhdGV8MjAyMy0wNS0xNVQxNDozMDo0NS4xMjM0NTY3ODla" // Base64 encoded "notadate|2023-05-15T14:30:45.123456789Z"
	_, err = Decode(invalidDateToken)
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "entry date parse", "Error should mention date parsing issue")
}
