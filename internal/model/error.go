package model

import "errors"

// Error kinds surfaced by the wallet store. Match them with errors.Is.
var (
	ErrInvalidWalletName   = errors.New("invalid wallet name")
	ErrWalletAlreadyExists = errors.New("wallet already exists")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrCorruptStoreRecord  = errors.New("corrupt store record")
)

// ErrorResponse is the JSON structure the CLI prints for failed commands.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ErrorCode maps an error to a stable machine-readable code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidWalletName):
		return "INVALID_WALLET_NAME"
	case errors.Is(err, ErrWalletAlreadyExists):
		return "WALLET_EXISTS"
	case errors.Is(err, ErrWalletNotFound):
		return "WALLET_NOT_FOUND"
	case errors.Is(err, ErrIncorrectPassword):
		return "INCORRECT_PASSWORD"
	case errors.Is(err, ErrCorruptStoreRecord):
		return "CORRUPT_STORE_RECORD"
	default:
		return ""
	}
}
