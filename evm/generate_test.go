package evm

import (
	"encoding/hex"
	"strings"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestAddressFromPrivateKeyVectors(t *testing.T) {
	tests := []struct {
		name       string
		privateKey string
		address    string
	}{
		{
			name:       "web3 accounts example",
			privateKey: "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318",
			address:    "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23",
		},
		{
			name:       "scalar one",
			privateKey: "0000000000000000000000000000000000000000000000000000000000000001",
			address:    "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := hex.DecodeString(tt.privateKey)
			require.NoError(t, err)

			address, err := AddressFromPrivateKey(key)
			require.NoError(t, err)
			require.Equal(t, tt.address, address)
		})
	}
}

func TestAddressFromPrivateKeyRejectsInvalid(t *testing.T) {
	order, err := hex.DecodeString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	require.NoError(t, err)

	for _, key := range [][]byte{nil, make([]byte, 31), make([]byte, 32), order} {
		_, err := AddressFromPrivateKey(key)
		require.ErrorIs(t, err, ErrInvalidPrivateKey)
	}
}

// Vectors from EIP-55.
func TestChecksumAddress(t *testing.T) {
	for _, want := range []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
		"0x52908400098527886E0F7030069857D2E4169EE7",
		"0xde709f2102306220921060314715629080e2fb77",
	} {
		raw, err := ParseAddress(strings.ToLower(want))
		require.NoError(t, err)
		require.Equal(t, want, ChecksumAddress(raw))
		require.True(t, IsChecksumAddress(want))
	}

	require.False(t, IsChecksumAddress("0x5aaeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	require.False(t, IsChecksumAddress("5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	require.False(t, IsChecksumAddress("0x5aAeb6"))
}

func TestGenerateKeyPairMatchesGoEthereum(t *testing.T) {
	for i := 0; i < 10; i++ {
		kp, err := GenerateKeyPair()
		require.NoError(t, err)
		require.Len(t, kp.PrivateKey, PrivateKeyLen)
		require.True(t, IsChecksumAddress(kp.Address))

		derived, err := AddressFromPrivateKey(kp.PrivateKey)
		require.NoError(t, err)
		require.Equal(t, kp.Address, derived)

		ethKey, err := ethcrypto.ToECDSA(kp.PrivateKey)
		require.NoError(t, err)
		require.Equal(t, ethcrypto.PubkeyToAddress(ethKey.PublicKey).Hex(), kp.Address)
	}
}

func TestGenerateKeyPairIsRandom(t *testing.T) {
	a, err := GenerateKeyPair()
	require.NoError(t, err)
	b, err := GenerateKeyPair()
	require.NoError(t, err)
	require.NotEqual(t, a.PrivateKey, b.PrivateKey)
	require.NotEqual(t, a.Address, b.Address)

	a.Wipe()
	require.Equal(t, make([]byte, PrivateKeyLen), a.PrivateKey)
}
