package common

import (
	"bytes"
	"fmt"
	"regexp"
	"time"

	"github.com/nansen-ai/nansen-cli-sub000/internal/model"
)

const (
	// TimestampLayout is ISO-8601 in UTC with millisecond precision,
	// e.g. "2026-10-17T09:30:00.000Z".
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

	// reservedName would map onto config.json.
	reservedName = "config"
)

var walletNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateWalletName rejects names that are empty, too long, contain path
// separators or dots, or collide with the store's own files.
func ValidateWalletName(name string) error {
	if !walletNamePattern.MatchString(name) {
		return fmt.Errorf("%w %q: use 1-64 letters, digits, '-' or '_'", model.ErrInvalidWalletName, name)
	}
	if name == reservedName {
		return fmt.Errorf("%w %q: name is reserved", model.ErrInvalidWalletName, name)
	}
	return nil
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts any RFC 3339 timestamp, including TimestampLayout.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// TrimBOM skips a UTF-8 BOM if present.
// Files edited on Windows may carry one.
func TrimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}
