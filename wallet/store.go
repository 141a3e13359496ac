// Package wallet persists named multi-chain wallets in a directory, all
// encrypted under one shared store password.
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/nansen-ai/nansen-cli-sub000/evm"
	"github.com/nansen-ai/nansen-cli-sub000/internal/base58"
	"github.com/nansen-ai/nansen-cli-sub000/internal/common"
	"github.com/nansen-ai/nansen-cli-sub000/internal/crypto"
	"github.com/nansen-ai/nansen-cli-sub000/internal/model"
	"github.com/nansen-ai/nansen-cli-sub000/solana"

	log "github.com/sirupsen/logrus"
)

// Store manages the wallet directory. It does not lock the directory:
// concurrent writers from several processes can lose updates.
type Store struct {
	dir string
}

// ExportedKey is one chain's address and raw private key.
type ExportedKey struct {
	Address    string
	PrivateKey []byte
}

// ExportedWallet holds decrypted key material. Call Wipe once it has been
// written out.
type ExportedWallet struct {
	Name   string
	EVM    ExportedKey // 32-byte secp256k1 scalar
	Solana ExportedKey // 64-byte seed||public key
}

// Wipe zeroes both private keys.
func (w *ExportedWallet) Wipe() {
	clear(w.EVM.PrivateKey)
	clear(w.Solana.PrivateKey)
}

// NewStore opens the wallet directory at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("wallet directory must not be empty")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create wallet directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the wallet directory.
func (s *Store) Dir() string {
	return s.dir
}

// Create generates a new wallet with an EVM and a Solana key, each encrypted
// under password. The first wallet fixes the store password; later wallets
// must use the same one. The first wallet also becomes the default.
// password must be []byte for security (caller should zero it after use)
func (s *Store) Create(name string, password []byte) (*model.WalletInfo, error) {
	if err := common.ValidateWalletName(name); err != nil {
		return nil, err
	}

	path := s.walletPath(name)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrWalletAlreadyExists, name)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat wallet file: %w", err)
	}

	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.PasswordHash == nil {
		// A missing hash only means a fresh store when no wallet exists yet.
		// Otherwise the password must open an existing wallet before it is
		// recorded as the store password.
		names, err := s.walletNames()
		if err != nil {
			return nil, err
		}
		if len(names) > 0 {
			existing, err := s.readWallet(names[0])
			if err != nil {
				return nil, err
			}
			if err := s.checkPassword(cfg, existing, password); err != nil {
				return nil, err
			}
		}
		passwordHash, err := crypto.HashPassword(password)
		if err != nil {
			return nil, err
		}
		cfg.PasswordHash = passwordHash
	} else {
		ok, err := crypto.VerifyPassword(password, cfg.PasswordHash)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, model.ErrIncorrectPassword
		}
	}

	evmKey, err := evm.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	defer evmKey.Wipe()

	solanaKey, err := solana.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	defer solanaKey.Wipe()

	// Each key gets its own salt and nonce even though the password is shared.
	evmBlob, err := crypto.Encrypt(evmKey.PrivateKey, password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt evm key: %w", err)
	}
	solanaBlob, err := crypto.Encrypt(solanaKey.PrivateKey, password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt solana key: %w", err)
	}

	record := &model.WalletFile{
		Name:      name,
		CreatedAt: common.FormatTimestamp(time.Now()),
		EVM:       &model.ChainKey{Address: evmKey.Address, Encrypted: evmBlob},
		Solana:    &model.ChainKey{Address: solanaKey.Address, Encrypted: solanaBlob},
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet file: %w", err)
	}
	if err := writeFileExclusive(path, data); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrWalletAlreadyExists, name)
		}
		return nil, fmt.Errorf("failed to write wallet file: %w", err)
	}

	if cfg.DefaultWallet == nil {
		cfg.DefaultWallet = &name
	}
	if err := s.saveConfig(cfg); err != nil {
		// A wallet without a persisted password hash would break the
		// single-password invariant.
		os.Remove(path)
		return nil, err
	}

	log.WithFields(log.Fields{
		"wallet": name,
		"evm":    record.EVM.Address,
		"solana": record.Solana.Address,
	}).Info("wallet created")

	return toInfo(record, cfg), nil
}

// List returns every wallet sorted by name without decrypting anything.
func (s *Store) List() ([]model.WalletInfo, error) {
	names, err := s.walletNames()
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}

	wallets := make([]model.WalletInfo, 0, len(names))
	for _, name := range names {
		record, err := s.readWallet(name)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, *toInfo(record, cfg))
	}
	return wallets, nil
}

// Show returns the public view of one wallet.
func (s *Store) Show(name string) (*model.WalletInfo, error) {
	if err := common.ValidateWalletName(name); err != nil {
		return nil, err
	}
	record, err := s.readWallet(name)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}
	return toInfo(record, cfg), nil
}

// Export verifies password and returns both private keys in the clear.
// Nothing is persisted; the caller must Wipe the result.
// password must be []byte for security (caller should zero it after use)
func (s *Store) Export(name string, password []byte) (*ExportedWallet, error) {
	if err := common.ValidateWalletName(name); err != nil {
		return nil, err
	}
	record, err := s.readWallet(name)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := s.checkPassword(cfg, record, password); err != nil {
		return nil, err
	}

	evmKey, err := crypto.Decrypt(record.EVM.Encrypted, password)
	if err != nil {
		return nil, fmt.Errorf("wallet %s: evm key: %w", name, err)
	}
	solanaKey, err := crypto.Decrypt(record.Solana.Encrypted, password)
	if err != nil {
		clear(evmKey)
		return nil, fmt.Errorf("wallet %s: solana key: %w", name, err)
	}

	exported := &ExportedWallet{
		Name:   name,
		EVM:    ExportedKey{Address: record.EVM.Address, PrivateKey: evmKey},
		Solana: ExportedKey{Address: record.Solana.Address, PrivateKey: solanaKey},
	}
	if err := verifyExport(exported); err != nil {
		exported.Wipe()
		return nil, err
	}

	log.WithField("wallet", name).Info("wallet exported")
	return exported, nil
}

// SetDefault makes name the wallet used when none is specified.
func (s *Store) SetDefault(name string) error {
	if err := common.ValidateWalletName(name); err != nil {
		return err
	}
	if _, err := s.readWallet(name); err != nil {
		return err
	}
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	cfg.DefaultWallet = &name
	if err := s.saveConfig(cfg); err != nil {
		return err
	}

	log.WithField("wallet", name).Info("default wallet set")
	return nil
}

// Default returns the default wallet name, or "" when the store is empty.
func (s *Store) Default() (string, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.DefaultWallet == nil {
		return "", nil
	}
	return *cfg.DefaultWallet, nil
}

// HasPassword reports whether the store password is already fixed, either
// by a stored hash or by existing wallet files. Wallet records are not
// parsed, so a corrupt record does not affect the answer.
func (s *Store) HasPassword() (bool, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return false, err
	}
	if cfg.PasswordHash != nil {
		return true, nil
	}
	names, err := s.walletNames()
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// Delete verifies password and removes the wallet. If it was the default,
// the first remaining wallet by name becomes the default, or none.
// password must be []byte for security (caller should zero it after use)
func (s *Store) Delete(name string, password []byte) error {
	if err := common.ValidateWalletName(name); err != nil {
		return err
	}
	record, err := s.readWallet(name)
	if err != nil {
		return err
	}
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	if err := s.checkPassword(cfg, record, password); err != nil {
		return err
	}

	if err := os.Remove(s.walletPath(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", model.ErrWalletNotFound, name)
		}
		return fmt.Errorf("failed to remove wallet file: %w", err)
	}
	log.WithField("wallet", name).Info("wallet deleted")

	if cfg.DefaultWallet == nil || *cfg.DefaultWallet != name {
		return nil
	}

	remaining, err := s.walletNames()
	if err != nil {
		return err
	}
	cfg.DefaultWallet = nil
	if len(remaining) > 0 {
		cfg.DefaultWallet = &remaining[0]
		log.WithField("wallet", remaining[0]).Info("default wallet reassigned")
	}
	return s.saveConfig(cfg)
}

// checkPassword verifies against the store hash. Stores written without a
// hash fall back to authenticating against the wallet's own EVM blob.
func (s *Store) checkPassword(cfg *model.StoreConfig, record *model.WalletFile, password []byte) error {
	if cfg.PasswordHash == nil {
		log.WithField("wallet", record.Name).Warn("store has no password hash, verifying against wallet key")
		plaintext, err := crypto.Decrypt(record.EVM.Encrypted, password)
		clear(plaintext)
		return err
	}

	ok, err := crypto.VerifyPassword(password, cfg.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrIncorrectPassword
	}
	return nil
}

// readWallet loads and validates <name>.json.
func (s *Store) readWallet(name string) (*model.WalletFile, error) {
	path := s.walletPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrWalletNotFound, name)
		}
		return nil, fmt.Errorf("failed to read wallet file: %w", err)
	}

	var record model.WalletFile
	if err := json.Unmarshal(common.TrimBOM(data), &record); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrCorruptStoreRecord, path, err)
	}
	if err := validateRecord(name, &record); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrCorruptStoreRecord, path, err)
	}
	return &record, nil
}

func validateRecord(name string, record *model.WalletFile) error {
	if record.Name != name {
		return fmt.Errorf("name %q does not match file name", record.Name)
	}
	if _, err := common.ParseTimestamp(record.CreatedAt); err != nil {
		return fmt.Errorf("invalid createdAt: %v", err)
	}
	if record.EVM == nil || record.EVM.Encrypted == nil {
		return errors.New("missing evm key")
	}
	if record.Solana == nil || record.Solana.Encrypted == nil {
		return errors.New("missing solana key")
	}
	if !evm.IsChecksumAddress(record.EVM.Address) {
		return fmt.Errorf("invalid evm address %q", record.EVM.Address)
	}
	if pub, err := base58.Decode(record.Solana.Address); err != nil || len(pub) != 32 {
		return fmt.Errorf("invalid solana address %q", record.Solana.Address)
	}
	return nil
}

// verifyExport re-derives both addresses from the decrypted keys.
func verifyExport(w *ExportedWallet) error {
	evmAddress, err := evm.AddressFromPrivateKey(w.EVM.PrivateKey)
	if err != nil {
		return fmt.Errorf("%w: wallet %s: %v", model.ErrCorruptStoreRecord, w.Name, err)
	}
	if evmAddress != w.EVM.Address {
		return fmt.Errorf("%w: wallet %s: evm key does not match address", model.ErrCorruptStoreRecord, w.Name)
	}

	solanaAddress, err := solana.AddressFromKeypair(w.Solana.PrivateKey)
	if err != nil {
		return fmt.Errorf("%w: wallet %s: %v", model.ErrCorruptStoreRecord, w.Name, err)
	}
	if solanaAddress != w.Solana.Address {
		return fmt.Errorf("%w: wallet %s: solana key does not match address", model.ErrCorruptStoreRecord, w.Name)
	}
	return nil
}

// walletNames lists wallet file stems, sorted. Temp files, config.json and
// files whose stem is not a valid wallet name are skipped.
func (s *Store) walletNames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || fileName == configFileName || !strings.HasSuffix(fileName, walletFileExt) {
			continue
		}
		name := strings.TrimSuffix(fileName, walletFileExt)
		if err := common.ValidateWalletName(name); err != nil {
			log.WithField("file", fileName).Debug("skipping file with invalid wallet name")
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func toInfo(record *model.WalletFile, cfg *model.StoreConfig) *model.WalletInfo {
	return &model.WalletInfo{
		Name: record.Name,
		Addresses: model.ChainAddresses{
			EVM:    record.EVM.Address,
			Solana: record.Solana.Address,
		},
		CreatedAt: record.CreatedAt,
		IsDefault: cfg.DefaultWallet != nil && *cfg.DefaultWallet == record.Name,
	}
}
