package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nansen-ai/nansen-cli-sub000/internal/common"
	"github.com/nansen-ai/nansen-cli-sub000/internal/config"
	"github.com/nansen-ai/nansen-cli-sub000/internal/model"
	"github.com/nansen-ai/nansen-cli-sub000/solana"

	"github.com/urfave/cli/v2"
)

// qrSize is the PNG edge length in pixels for JSON QR output.
const qrSize = 256

var createCommand = cli.Command{
	Name:      "create",
	Usage:     "Create a wallet with a new EVM and Solana key",
	ArgsUsage: "<name>",
	Action:    create,
}

var listCommand = cli.Command{
	Name:   "list",
	Usage:  "List wallets",
	Action: list,
}

var showCommand = cli.Command{
	Name:      "show",
	Usage:     "Show a wallet's addresses",
	ArgsUsage: "[name]",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "qr", Usage: "print address QR codes (base64 PNG with --json)"},
	},
	Action: show,
}

var exportCommand = cli.Command{
	Name:      "export",
	Usage:     "Print a wallet's private keys",
	ArgsUsage: "[name]",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "solana-keypair", Usage: "print only the Solana keypair as a solana-keygen JSON array"},
	},
	Action: export,
}

var defaultCommand = cli.Command{
	Name:      "default",
	Usage:     "Set the default wallet",
	ArgsUsage: "<name>",
	Action:    setDefault,
}

var deleteCommand = cli.Command{
	Name:      "delete",
	Usage:     "Delete a wallet",
	ArgsUsage: "<name>",
	Action:    remove,
}

func create(ctx *cli.Context) error {
	name, err := requireName(ctx)
	if err != nil {
		return err
	}
	store, err := openStore(ctx)
	if err != nil {
		return err
	}

	// Confirm only when this password will become the store password.
	hasPassword, err := store.HasPassword()
	if err != nil {
		return err
	}
	password, err := config.ReadPassword("Wallet password: ", !hasPassword)
	if err != nil {
		return err
	}
	defer clear(password) // Always clear password from memory

	info, err := store.Create(name, password)
	if err != nil {
		return err
	}
	if ctx.Bool(jsonFlag.Name) {
		return printJSON(info)
	}
	fmt.Printf("Created wallet %q\n", info.Name)
	printInfo(info)
	return nil
}

func list(ctx *cli.Context) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	wallets, err := store.List()
	if err != nil {
		return err
	}
	if ctx.Bool(jsonFlag.Name) {
		return printJSON(wallets)
	}
	if len(wallets) == 0 {
		fmt.Println("No wallets. Create one with: nansen-wallet create <name>")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEVM\tSOLANA\tCREATED")
	for _, info := range wallets {
		name := info.Name
		if info.IsDefault {
			name += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, info.Addresses.EVM, info.Addresses.Solana, info.CreatedAt)
	}
	return w.Flush()
}

func show(ctx *cli.Context) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	name, err := resolveName(ctx, store)
	if err != nil {
		return err
	}
	info, err := store.Show(name)
	if err != nil {
		return err
	}
	if ctx.Bool(jsonFlag.Name) {
		if !ctx.Bool("qr") {
			return printJSON(info)
		}
		evmQR, err := common.AddressQRBase64(info.Addresses.EVM, qrSize)
		if err != nil {
			return err
		}
		solanaQR, err := common.AddressQRBase64(info.Addresses.Solana, qrSize)
		if err != nil {
			return err
		}
		return printJSON(struct {
			*model.WalletInfo
			QR model.ChainAddresses `json:"qr"`
		}{info, model.ChainAddresses{EVM: evmQR, Solana: solanaQR}})
	}

	printInfo(info)
	if ctx.Bool("qr") {
		for _, address := range []string{info.Addresses.EVM, info.Addresses.Solana} {
			qr, err := common.AddressQRText(address)
			if err != nil {
				return err
			}
			fmt.Printf("\n%s\n%s", address, qr)
		}
	}
	return nil
}

func export(ctx *cli.Context) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	name, err := resolveName(ctx, store)
	if err != nil {
		return err
	}

	password, err := config.ReadPassword("Wallet password: ", false)
	if err != nil {
		return err
	}
	defer clear(password) // Always clear password from memory

	exported, err := store.Export(name, password)
	if err != nil {
		return err
	}
	defer exported.Wipe()

	if ctx.Bool("solana-keypair") {
		keypair, err := solana.KeypairFileJSON(exported.Solana.PrivateKey)
		if err != nil {
			return err
		}
		fmt.Println(string(keypair))
		return nil
	}

	resp := model.ExportResponse{
		Name: exported.Name,
		EVM: model.ChainSecret{
			Address:    exported.EVM.Address,
			PrivateKey: "0x" + hex.EncodeToString(exported.EVM.PrivateKey),
		},
		Solana: model.ChainSecret{
			Address:    exported.Solana.Address,
			PrivateKey: hex.EncodeToString(exported.Solana.PrivateKey),
		},
	}
	if ctx.Bool(jsonFlag.Name) {
		return printJSON(resp)
	}

	solanaBase58, err := solana.PrivateKeyBase58(exported.Solana.PrivateKey)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "WARNING: anyone with these keys controls the funds. Do not share them.")
	fmt.Printf("Wallet: %s\n", resp.Name)
	fmt.Printf("EVM address:         %s\n", resp.EVM.Address)
	fmt.Printf("EVM private key:     %s\n", resp.EVM.PrivateKey)
	fmt.Printf("Solana address:      %s\n", resp.Solana.Address)
	fmt.Printf("Solana private key:  %s\n", resp.Solana.PrivateKey)
	fmt.Printf("Solana (base58):     %s\n", solanaBase58)
	return nil
}

func setDefault(ctx *cli.Context) error {
	name, err := requireName(ctx)
	if err != nil {
		return err
	}
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	if err := store.SetDefault(name); err != nil {
		return err
	}
	if ctx.Bool(jsonFlag.Name) {
		return printJSON(map[string]string{"defaultWallet": name})
	}
	fmt.Printf("Default wallet set to %q\n", name)
	return nil
}

func remove(ctx *cli.Context) error {
	name, err := requireName(ctx)
	if err != nil {
		return err
	}
	store, err := openStore(ctx)
	if err != nil {
		return err
	}

	password, err := config.ReadPassword("Wallet password: ", false)
	if err != nil {
		return err
	}
	defer clear(password) // Always clear password from memory

	if err := store.Delete(name, password); err != nil {
		return err
	}
	def, err := store.Default()
	if err != nil {
		return err
	}
	if ctx.Bool(jsonFlag.Name) {
		return printJSON(map[string]any{"deleted": name, "defaultWallet": nullable(def)})
	}
	fmt.Printf("Deleted wallet %q\n", name)
	if def != "" {
		fmt.Printf("Default wallet: %s\n", def)
	}
	return nil
}

func printInfo(info *model.WalletInfo) {
	def := ""
	if info.IsDefault {
		def = " (default)"
	}
	fmt.Printf("Name:     %s%s\n", info.Name, def)
	fmt.Printf("EVM:      %s\n", info.Addresses.EVM)
	fmt.Printf("Solana:   %s\n", info.Addresses.Solana)
	fmt.Printf("Created:  %s\n", info.CreatedAt)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
