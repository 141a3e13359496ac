package common

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/nansen-ai/nansen-cli-sub000/internal/model"
	"github.com/stretchr/testify/require"
)

func TestValidateWalletName(t *testing.T) {
	valid := []string{"w1", "main", "trading-bot", "cold_storage", "A", strings.Repeat("x", 64)}
	for _, name := range valid {
		require.NoError(t, ValidateWalletName(name), name)
	}

	invalid := []string{
		"",
		".",
		"..",
		".hidden",
		"../escape",
		"a/b",
		`a\b`,
		"a..b",
		"with space",
		"config",
		"name.json",
		strings.Repeat("x", 65),
		"ümlaut",
	}
	for _, name := range invalid {
		require.ErrorIs(t, ValidateWalletName(name), model.ErrInvalidWalletName, name)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2026, 10, 17, 9, 30, 0, 123456789, time.FixedZone("CEST", 2*3600))

	s := FormatTimestamp(ts)
	require.Equal(t, "2026-10-17T07:30:00.123Z", s)

	parsed, err := ParseTimestamp(s)
	require.NoError(t, err)
	require.True(t, parsed.Equal(ts.Truncate(time.Millisecond)))
}

func TestTrimBOM(t *testing.T) {
	require.Equal(t, []byte(`{}`), TrimBOM([]byte("\xEF\xBB\xBF{}")))
	require.Equal(t, []byte(`{}`), TrimBOM([]byte(`{}`)))
}

func TestAddressQR(t *testing.T) {
	address := "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"

	b64, err := AddressQRBase64(address, 128)
	require.NoError(t, err)
	png, err := base64.StdEncoding.DecodeString(b64)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(png), "\x89PNG"))

	text, err := AddressQRText(address)
	require.NoError(t, err)
	require.NotEmpty(t, text)
}
