package model

const (
	// CipherAES256GCM identifies the authenticated cipher of an EncryptedBlob.
	CipherAES256GCM = "aes-256-gcm"
	// KDFScrypt identifies the password-to-key derivation of an EncryptedBlob.
	KDFScrypt = "scrypt"
)

// KDFParams holds the scrypt work factors recorded alongside each blob.
type KDFParams struct {
	N     int `json:"N"`
	R     int `json:"r"`
	P     int `json:"p"`
	DKLen int `json:"dkLen"`
}

// EncryptedBlob is the at-rest form of one secret. All byte fields are hex.
type EncryptedBlob struct {
	Cipher     string    `json:"cipher"`
	KDF        string    `json:"kdf"`
	KDFParams  KDFParams `json:"kdfParams"`
	Salt       string    `json:"salt"`
	IV         string    `json:"iv"`
	AuthTag    string    `json:"authTag"`
	Ciphertext string    `json:"ciphertext"`
}

// ChainKey is the public address and encrypted private key for one chain.
type ChainKey struct {
	Address   string         `json:"address"`
	Encrypted *EncryptedBlob `json:"encrypted"`
}

// WalletFile represents <name>.json in the wallet directory
type WalletFile struct {
	Name      string    `json:"name"`
	CreatedAt string    `json:"createdAt"`
	EVM       *ChainKey `json:"evm"`
	Solana    *ChainKey `json:"solana"`
}

// PasswordHash verifies a candidate password without touching any wallet.
type PasswordHash struct {
	Salt string `json:"salt"`
	Hash string `json:"hash"`
}

// StoreConfig represents config.json in the wallet directory
type StoreConfig struct {
	DefaultWallet *string       `json:"defaultWallet"`
	PasswordHash  *PasswordHash `json:"passwordHash"`
}
