package base58

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"

	mrbase58 "github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		input string // hex
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "single zero", input: "00", want: "1"},
		{name: "hello world", input: hex.EncodeToString([]byte("Hello World!")), want: "2NEpo7TZRRrLZSi2U"},
		{name: "leading zeros", input: "00000000287fb4cd", want: "111233QC4"},
		{name: "single byte", input: "39", want: "z"},
		{name: "one block", input: "3a", want: "21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := hex.DecodeString(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, Encode(in))
		})
	}
}

func TestEncodeAllZeros(t *testing.T) {
	for n := 1; n <= 40; n++ {
		require.Equal(t, strings.Repeat("1", n), Encode(make([]byte, n)))
	}
}

func TestEncodeMatchesReference(t *testing.T) {
	for n := 0; n < 80; n++ {
		buf := make([]byte, n)
		_, err := rand.Read(buf)
		require.NoError(t, err)
		if n > 2 {
			buf[0], buf[1] = 0, 0
		}

		got := Encode(buf)
		require.Equal(t, mrbase58.Encode(buf), got)

		decoded, err := Decode(got)
		require.NoError(t, err)
		require.Equal(t, buf, decoded)
	}
}

func TestDecodeRejectsInvalidCharacters(t *testing.T) {
	for _, s := range []string{"0", "O", "I", "l", "abc+", "2NEpo7TZ RRrLZSi2U"} {
		_, err := Decode(s)
		require.ErrorIs(t, err, ErrInvalidCharacter, s)
	}
}
