package solana

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/nansen-ai/nansen-cli-sub000/internal/base58"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyPairIsConsistent(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	require.Len(t, kp.PrivateKey, KeypairLen)

	seed := kp.PrivateKey[:ed25519.SeedSize]
	pub := ed25519.PublicKey(kp.PrivateKey[ed25519.SeedSize:])

	msg := []byte("nansen wallet self-test")
	sig := ed25519.Sign(ed25519.NewKeyFromSeed(seed), msg)
	require.True(t, ed25519.Verify(pub, msg, sig))

	require.Equal(t, base58.Encode(pub), kp.Address)
	require.Equal(t, solanago.PrivateKey(kp.PrivateKey).PublicKey().String(), kp.Address)

	address, err := AddressFromKeypair(kp.PrivateKey)
	require.NoError(t, err)
	require.Equal(t, kp.Address, address)
}

// RFC 8032 test 1.
func TestAddressFromKeypairVector(t *testing.T) {
	seed, err := hex.DecodeString("9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	require.NoError(t, err)
	pub, err := hex.DecodeString("d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	require.NoError(t, err)

	keypair := append(append([]byte{}, seed...), pub...)
	address, err := AddressFromKeypair(keypair)
	require.NoError(t, err)
	require.Equal(t, solanago.PublicKeyFromBytes(pub).String(), address)

	decoded, err := base58.Decode(address)
	require.NoError(t, err)
	require.Equal(t, pub, decoded)
}

func TestAddressFromKeypairRejectsMismatch(t *testing.T) {
	a, err := GenerateKeyPair()
	require.NoError(t, err)
	b, err := GenerateKeyPair()
	require.NoError(t, err)

	mixed := append(append([]byte{}, a.PrivateKey[:32]...), b.PrivateKey[32:]...)
	_, err = AddressFromKeypair(mixed)
	require.ErrorIs(t, err, ErrInvalidKeypair)

	_, err = AddressFromKeypair(a.PrivateKey[:32])
	require.ErrorIs(t, err, ErrInvalidKeypair)
}

func TestExportFormats(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	b58, err := PrivateKeyBase58(kp.PrivateKey)
	require.NoError(t, err)
	parsed, err := solanago.PrivateKeyFromBase58(b58)
	require.NoError(t, err)
	require.Equal(t, kp.PrivateKey, []byte(parsed))

	raw, err := KeypairFileJSON(kp.PrivateKey)
	require.NoError(t, err)
	var ints []int
	require.NoError(t, json.Unmarshal(raw, &ints))
	require.Len(t, ints, KeypairLen)
	for i, v := range ints {
		require.Equal(t, int(kp.PrivateKey[i]), v)
	}

	kp.Wipe()
	require.Equal(t, make([]byte, KeypairLen), kp.PrivateKey)
}
