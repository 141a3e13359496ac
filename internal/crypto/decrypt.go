package crypto

import (
	"encoding/hex"
	"fmt"

	"github.com/nansen-ai/nansen-cli-sub000/internal/model"

	"golang.org/x/crypto/scrypt"
)

// Upper bounds on work factors accepted from disk, so a tampered blob cannot
// make Decrypt allocate gigabytes.
const (
	maxScryptN = 1 << 20
	maxScryptR = 32
	maxScryptP = 16
)

// Decrypt opens blob with a key re-derived from password and the stored
// salt and parameters. A failed tag check is reported as
// model.ErrIncorrectPassword whatever its cause.
// password must be []byte for security (caller should zero it after use)
func Decrypt(blob *model.EncryptedBlob, password []byte) ([]byte, error) {
	if blob == nil {
		return nil, fmt.Errorf("%w: missing encrypted blob", model.ErrCorruptStoreRecord)
	}
	if blob.Cipher != model.CipherAES256GCM {
		return nil, fmt.Errorf("%w: unsupported cipher %q", model.ErrCorruptStoreRecord, blob.Cipher)
	}
	if blob.KDF != model.KDFScrypt {
		return nil, fmt.Errorf("%w: unsupported kdf %q", model.ErrCorruptStoreRecord, blob.KDF)
	}
	if err := validateParams(blob.KDFParams); err != nil {
		return nil, err
	}

	// Decode salt, nonce, tag and ciphertext
	salt, err := decodeField("salt", blob.Salt)
	if err != nil {
		return nil, err
	}
	nonce, err := decodeField("iv", blob.IV)
	if err != nil {
		return nil, err
	}
	tag, err := decodeField("authTag", blob.AuthTag)
	if err != nil {
		return nil, err
	}
	ciphertext, err := decodeField("ciphertext", blob.Ciphertext)
	if err != nil {
		return nil, err
	}
	if len(salt) == 0 || len(nonce) != nonceLen || len(tag) != tagLen {
		return nil, fmt.Errorf(
			"%w: bad field sizes (salt %d, iv %d, authTag %d)",
			model.ErrCorruptStoreRecord, len(salt), len(nonce), len(tag),
		)
	}

	// Derive key from password
	p := blob.KDFParams
	key, err := scrypt.Key(password, salt, p.N, p.R, p.P, p.DKLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key) // wipe derived key from memory

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	// Decrypt
	plaintext, err := aesGCM.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, model.ErrIncorrectPassword
	}
	return plaintext, nil
}

func validateParams(p model.KDFParams) error {
	if p.N <= 1 || p.N > maxScryptN || p.N&(p.N-1) != 0 {
		return fmt.Errorf("%w: invalid scrypt N %d", model.ErrCorruptStoreRecord, p.N)
	}
	if p.R <= 0 || p.R > maxScryptR || p.P <= 0 || p.P > maxScryptP {
		return fmt.Errorf("%w: invalid scrypt r=%d p=%d", model.ErrCorruptStoreRecord, p.R, p.P)
	}
	if p.DKLen != scryptKeyLen {
		return fmt.Errorf("%w: invalid key length %d", model.ErrCorruptStoreRecord, p.DKLen)
	}
	return nil
}

func decodeField(name, value string) ([]byte, error) {
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", model.ErrCorruptStoreRecord, name, err)
	}
	return b, nil
}
