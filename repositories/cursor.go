package repositories

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
)

// Cursors encode a timestamp boundary as an opaque string. Callers never see
// a raw offset, so concurrent inserts cannot shift page boundaries or cause
// skipped and duplicated rows while paging.

func EncodeCursor(t time.Time) string {
	raw := strconv.FormatInt(t.UnixNano(), 10)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func DecodeCursor(cursor string) (time.Time, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed cursor: %w", err)
	}
	nanos, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed cursor: %w", err)
	}
	return time.Unix(0, nanos).UTC(), nil
}
