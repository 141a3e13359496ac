// Package solana derives Ed25519 key pairs and Base58 addresses for Solana.
package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nansen-ai/nansen-cli-sub000/internal/base58"

	solanago "github.com/gagliardetto/solana-go"
)

// KeypairLen is the size of the stored seed||public key pair.
const KeypairLen = ed25519.PrivateKeySize

// ErrInvalidKeypair is returned for keypair bytes that are not a
// self-consistent seed||public key pair.
var ErrInvalidKeypair = errors.New("invalid ed25519 keypair")

// KeyPair is a freshly generated Solana account.
type KeyPair struct {
	PrivateKey []byte // 64 bytes: 32-byte seed followed by 32-byte public key
	Address    string // Base58 public key
}

// Wipe zeroes the keypair bytes.
func (k *KeyPair) Wipe() {
	clear(k.PrivateKey)
}

// GenerateKeyPair creates a random Ed25519 keypair from crypto/rand.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := solanago.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}

	pub := ed25519.PrivateKey(priv).Public().(ed25519.PublicKey)
	return &KeyPair{
		PrivateKey: []byte(priv),
		Address:    base58.Encode(pub),
	}, nil
}

// AddressFromKeypair re-derives the public key from the seed half of
// keypair, checks it against the stored public half and returns its address.
func AddressFromKeypair(keypair []byte) (string, error) {
	pub, err := publicKey(keypair)
	if err != nil {
		return "", err
	}
	return base58.Encode(pub), nil
}

// PrivateKeyBase58 renders keypair in the Base58 form accepted by wallet
// import dialogs.
func PrivateKeyBase58(keypair []byte) (string, error) {
	if _, err := publicKey(keypair); err != nil {
		return "", err
	}
	return solanago.PrivateKey(keypair).String(), nil
}

// KeypairFileJSON renders keypair as the JSON byte array written by
// solana-keygen (id.json).
func KeypairFileJSON(keypair []byte) ([]byte, error) {
	if _, err := publicKey(keypair); err != nil {
		return nil, err
	}
	ints := make([]int, len(keypair))
	for i, b := range keypair {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}

func publicKey(keypair []byte) (ed25519.PublicKey, error) {
	if len(keypair) != KeypairLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeypair, KeypairLen, len(keypair))
	}
	derived := ed25519.NewKeyFromSeed(keypair[:ed25519.SeedSize])
	defer clear(derived)

	pub := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(pub, derived[ed25519.SeedSize:])
	if !bytes.Equal(pub, keypair[ed25519.SeedSize:]) {
		return nil, fmt.Errorf("%w: public key does not match seed", ErrInvalidKeypair)
	}
	return pub, nil
}
