package model

// ChainAddresses lists the public address of each chain in a wallet.
type ChainAddresses struct {
	EVM    string `json:"evm"`
	Solana string `json:"solana"`
}

// WalletInfo is the public view of a wallet returned by create, list and show.
type WalletInfo struct {
	Name      string         `json:"name"`
	Addresses ChainAddresses `json:"addresses"`
	CreatedAt string         `json:"createdAt"`
	IsDefault bool           `json:"isDefault"`
}

// ChainSecret is one chain's address with its raw private key in hex.
type ChainSecret struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
}

// ExportResponse is the output of the export command.
type ExportResponse struct {
	Name   string      `json:"name"`
	EVM    ChainSecret `json:"evm"`
	Solana ChainSecret `json:"solana"`
}
