package offset

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const cursorPrefix = "cursor:offset:"

// EncodeCursor encodes a row offset as a base64 string of the form "cursor:offset:NUMBER".
func EncodeCursor(offset int) *string {
	encoded := base64.URLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
	return &encoded
}

// DecodeCursor extracts the offset from a cursor produced by EncodeCursor.
// Nil, malformed, and negative cursors decode to 0.
func DecodeCursor(input *string) int {
	if input == nil {
		return 0
	}

	decoded, err := base64.URLEncoding.DecodeString(*input)
	if err != nil {
		return 0
	}

	raw, ok := strings.CutPrefix(string(decoded), cursorPrefix)
	if !ok {
		return 0
	}

	offset, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || offset < 0 {
		return 0
	}
	return int(offset)
}

// CursorFor returns the cursor that resumes after the given 0-based page, which is what
// a relay "after" argument expects. The first page has no cursor.
func CursorFor(page, pageSize int) *string {
	if page <= 0 || pageSize <= 0 {
		return nil
	}
	return EncodeCursor(page * pageSize)
}
