package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

const envPrefix = "NANSEN"

// Config contains all configuration parameters for the wallet CLI.
// Password is never part of Config - use ReadPassword.
type Config struct {
	WalletDir string `envconfig:"WALLET_DIR"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads configuration from NANSEN_* environment variables and fills
// in the default wallet directory.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if c.WalletDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		c.WalletDir = filepath.Join(home, ".nansen", "wallets")
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetWalletDir returns the wallet directory from configuration
func GetWalletDir() string {
	return Get().WalletDir
}

// GetLogLevel returns the log level from configuration
func GetLogLevel() string {
	return Get().LogLevel
}

// PasswordEnvVar lets scripts supply the password without a terminal.
const PasswordEnvVar = envPrefix + "_WALLET_PASSWORD"

// ReadPassword returns the wallet password from PasswordEnvVar or, failing
// that, prompts for it in the terminal without echo. With confirm set the
// password is asked twice and must match.
// Caller must zero the returned slice after use for security.
func ReadPassword(prompt string, confirm bool) ([]byte, error) {
	if env := os.Getenv(PasswordEnvVar); env != "" {
		return []byte(env), nil
	}

	password, err := promptForPassword(prompt)
	if err != nil {
		return nil, err
	}
	if !confirm {
		return password, nil
	}

	again, err := promptForPassword("Confirm password: ")
	if err != nil {
		clear(password)
		return nil, err
	}
	defer clear(again)

	if !bytes.Equal(password, again) {
		clear(password)
		return nil, errors.New("passwords do not match")
	}
	return password, nil
}

// promptForPassword reads a password in the terminal without echoing.
func promptForPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("stdin is not a terminal: run interactively or set %s", PasswordEnvVar)
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	password := make([]byte, len(raw))
	copy(password, raw)
	clear(raw)
	return password, nil
}
