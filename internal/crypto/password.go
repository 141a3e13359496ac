package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/nansen-ai/nansen-cli-sub000/internal/model"

	"golang.org/x/crypto/scrypt"
)

// The password hash format has no parameter fields, so its work factors are
// fixed for every store. N stays below scryptN.
const (
	passwordHashN   = 1 << 12
	passwordHashR   = 8
	passwordHashP   = 1
	passwordHashLen = 32
	passwordSaltLen = 16
)

// HashPassword derives the store's password verifier. Its salt is
// independent of every key-encryption salt and the output is never used as
// a key.
func HashPassword(password []byte) (*model.PasswordHash, error) {
	salt := make([]byte, passwordSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	hash, err := hashPassword(password, salt)
	if err != nil {
		return nil, err
	}

	return &model.PasswordHash{
		Salt: hex.EncodeToString(salt),
		Hash: hex.EncodeToString(hash),
	}, nil
}

// VerifyPassword reports whether password matches stored.
func VerifyPassword(password []byte, stored *model.PasswordHash) (bool, error) {
	if stored == nil {
		return false, fmt.Errorf("%w: missing password hash", model.ErrCorruptStoreRecord)
	}

	salt, err := decodeField("passwordHash.salt", stored.Salt)
	if err != nil {
		return false, err
	}
	want, err := decodeField("passwordHash.hash", stored.Hash)
	if err != nil {
		return false, err
	}
	if len(salt) == 0 || len(want) != passwordHashLen {
		return false, fmt.Errorf("%w: bad password hash sizes", model.ErrCorruptStoreRecord)
	}

	got, err := hashPassword(password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func hashPassword(password, salt []byte) ([]byte, error) {
	hash, err := scrypt.Key(password, salt, passwordHashN, passwordHashR, passwordHashP, passwordHashLen)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}
