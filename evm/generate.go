// Package evm derives secp256k1 key pairs and EIP-55 checksummed addresses
// for Ethereum-compatible chains.
package evm

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/nansen-ai/nansen-cli-sub000/internal/keccak"

	"github.com/btcsuite/btcd/btcec/v2"
)

const (
	// PrivateKeyLen is the size of a raw secp256k1 private key.
	PrivateKeyLen = 32
	// AddressLen is the size of a raw EVM address.
	AddressLen = 20
)

// ErrInvalidPrivateKey is returned for keys that are not a valid secp256k1 scalar.
var ErrInvalidPrivateKey = errors.New("invalid secp256k1 private key")

// KeyPair is a freshly generated EVM account.
type KeyPair struct {
	PrivateKey []byte // 32 bytes, big-endian scalar
	Address    string // 0x-prefixed EIP-55 checksummed
}

// Wipe zeroes the private key.
func (k *KeyPair) Wipe() {
	clear(k.PrivateKey)
}

// GenerateKeyPair creates a random secp256k1 key from crypto/rand.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secp256k1 key: %w", err)
	}
	defer priv.Zero()

	privateKey := priv.Serialize()
	address := addressFromPublicKey(priv.PubKey())

	return &KeyPair{PrivateKey: privateKey, Address: address}, nil
}

// AddressFromPrivateKey derives the checksummed address of a raw private key.
func AddressFromPrivateKey(privateKey []byte) (string, error) {
	if len(privateKey) != PrivateKeyLen {
		return "", fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPrivateKey, PrivateKeyLen, len(privateKey))
	}

	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(privateKey); overflow || scalar.IsZero() {
		scalar.Zero()
		return "", fmt.Errorf("%w: out of range", ErrInvalidPrivateKey)
	}
	scalar.Zero()

	priv, pub := btcec.PrivKeyFromBytes(privateKey)
	defer priv.Zero()

	return addressFromPublicKey(pub), nil
}

// addressFromPublicKey hashes the 64-byte X||Y public key (without the 0x04
// prefix) and keeps the low 20 bytes.
func addressFromPublicKey(pub *btcec.PublicKey) string {
	uncompressed := pub.SerializeUncompressed()
	hash := keccak.Sum256(uncompressed[1:])

	var raw [AddressLen]byte
	copy(raw[:], hash[len(hash)-AddressLen:])
	return ChecksumAddress(raw)
}

// ChecksumAddress renders raw as an EIP-55 mixed-case hex address. Letter
// digits are uppercased where the matching nibble of keccak(lowercase hex)
// is 8 or more.
func ChecksumAddress(raw [AddressLen]byte) string {
	lower := []byte(hex.EncodeToString(raw[:]))
	hash := keccak.Sum256(lower)

	for i, c := range lower {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			lower[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(lower)
}

// ParseAddress decodes a 0x-prefixed 40-digit hex address in any case.
func ParseAddress(s string) ([AddressLen]byte, error) {
	var raw [AddressLen]byte
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return raw, fmt.Errorf("address %q is missing 0x prefix", s)
	}
	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return raw, fmt.Errorf("address %q is not hex: %w", s, err)
	}
	if len(b) != AddressLen {
		return raw, fmt.Errorf("address %q must be %d bytes, got %d", s, AddressLen, len(b))
	}
	copy(raw[:], b)
	return raw, nil
}

// IsChecksumAddress reports whether s is a well-formed address with a valid
// EIP-55 checksum.
func IsChecksumAddress(s string) bool {
	raw, err := ParseAddress(s)
	if err != nil {
		return false
	}
	return ChecksumAddress(raw) == "0x"+s[2:]
}
