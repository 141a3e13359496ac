package keccak

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func TestSum256KnownVectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		},
		{
			name:  "hello",
			input: "hello",
			want:  "1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8",
		},
		{
			name:  "abc",
			input: "abc",
			want:  "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := Sum256([]byte(tt.input))
			require.Equal(t, tt.want, hex.EncodeToString(sum[:]))
		})
	}
}

func TestERC20TransferSelector(t *testing.T) {
	sum := Sum256([]byte("transfer(address,uint256)"))
	require.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, sum[:4])
}

// Lengths around the 136-byte rate exercise the single-byte 0x81 padding
// case and the extra padding block.
func TestSum256MatchesLegacyKeccak(t *testing.T) {
	for n := 0; n <= 3*rate+1; n++ {
		msg := make([]byte, n)
		_, err := rand.Read(msg)
		require.NoError(t, err)

		ref := sha3.NewLegacyKeccak256()
		ref.Write(msg)

		got := Sum256(msg)
		require.Equal(t, ref.Sum(nil), got[:], "length %d", n)
	}
}

func TestStreamingWrites(t *testing.T) {
	msg := bytes.Repeat([]byte("nansen"), 100)
	want := Sum256(msg)

	h := New256()
	for _, chunk := range [][]byte{msg[:1], msg[1:135], msg[135:137], msg[137:]} {
		n, err := h.Write(chunk)
		require.NoError(t, err)
		require.Equal(t, len(chunk), n)
	}

	require.Equal(t, want[:], h.Sum(nil))
	// Sum must not disturb the running state.
	require.Equal(t, want[:], h.Sum(nil))

	h.Reset()
	empty := Sum256(nil)
	require.Equal(t, empty[:], h.Sum(nil))
	require.Equal(t, Size, h.Size())
	require.Equal(t, rate, h.BlockSize())
}
