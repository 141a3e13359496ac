package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/nansen-ai/nansen-cli-sub000/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for wallet keys
	//
	// N=2^14 (~16MB RAM) matches the default work factor of the Node.js
	// scrypt implementation, which keeps blobs readable by the JS tooling
	// that shares this wallet directory. Parameters are written into every
	// blob, so raising them later does not break existing wallets.
	scryptN      = 1 << 14
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32 // AES-256
	saltLen      = 32
	nonceLen     = 12
	tagLen       = 16
)

// Encrypt seals secret under a key derived from password.
// A fresh salt and nonce are drawn for every call.
// password must be []byte for security (caller should zero it after use)
func Encrypt(secret, password []byte) (*model.EncryptedBlob, error) {
	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	params := model.KDFParams{N: scryptN, R: scryptR, P: scryptP, DKLen: scryptKeyLen}

	// Derive key from password
	key, err := scrypt.Key(password, salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key) // wipe derived key from memory

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	// Seal appends the tag to the ciphertext; the blob stores them apart.
	sealed := aesGCM.Seal(nil, nonce, secret, nil)
	ciphertext, tag := sealed[:len(sealed)-tagLen], sealed[len(sealed)-tagLen:]

	return &model.EncryptedBlob{
		Cipher:     model.CipherAES256GCM,
		KDF:        model.KDFScrypt,
		KDFParams:  params,
		Salt:       hex.EncodeToString(salt),
		IV:         hex.EncodeToString(nonce),
		AuthTag:    hex.EncodeToString(tag),
		Ciphertext: hex.EncodeToString(ciphertext),
	}, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	// Create AES cipher
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	// Create GCM
	aesGCM, err := cipher.NewGCMWithTagSize(block, tagLen)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
