package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor is a keyset position in a journal entry listing: the sort key of the
// last row on the previous page. Clients treat the encoded form as opaque.
type Cursor struct {
	EntryDate time.Time
	CreatedAt time.Time
}

// Encode serializes the cursor into a base64 token.
func (c Cursor) Encode() string {
	raw := c.EntryDate.Format(timeFormat) + "|" + c.CreatedAt.Format(timeFormat)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// Decode parses a token produced by Encode.
func Decode(token string) (Cursor, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return Cursor{}, fmt.Errorf("invalid pagination token (missing separator)")
	}

	var c Cursor
	if c.EntryDate, err = time.Parse(timeFormat, parts[0]); err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token (entry date parse): %w", err)
	}
	if c.CreatedAt, err = time.Parse(timeFormat, parts[1]); err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token (created_at parse): %w", err)
	}
	return c, nil
}
