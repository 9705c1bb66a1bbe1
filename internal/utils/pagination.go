package utils

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/tablewise/table_reservation_app/internal/apperrors"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ClampLimit normalizes a caller-supplied page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// EncodeNextToken packs an offset into an opaque cursor.
func EncodeNextToken(offset int) string {
	return base64.URLEncoding.EncodeToString([]byte(fmt.Sprintf("o:%d", offset)))
}

// DecodeNextToken unpacks a cursor produced by EncodeNextToken. A nil or
// empty token means offset zero.
func DecodeNextToken(token *string) (int, error) {
	if token == nil || *token == "" {
		return 0, nil
	}
	raw, err := base64.URLEncoding.DecodeString(*token)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed pagination token", apperrors.ErrValidation)
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 || parts[0] != "o" {
		return 0, fmt.Errorf("%w: malformed pagination token", apperrors.ErrValidation)
	}
	offset, err := strconv.Atoi(parts[1])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("%w: malformed pagination token", apperrors.ErrValidation)
	}
	return offset, nil
}

// NextTokenForPage returns the cursor for the page after this one, or nil
// when the page was short (no further rows).
func NextTokenForPage(offset, limit, got int) *string {
	if got < limit {
		return nil
	}
	token := EncodeNextToken(offset + got)
	return &token
}
