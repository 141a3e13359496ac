// Command nansen-wallet manages the local EVM + Solana wallet store.
//
// Usage: nansen-wallet [--dir DIR] [--json] <command> [args]
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nansen-ai/nansen-cli-sub000/internal/config"
	"github.com/nansen-ai/nansen-cli-sub000/internal/model"
	"github.com/nansen-ai/nansen-cli-sub000/wallet"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var Version = "dev"

var (
	dirFlag = &cli.StringFlag{
		Name:  "dir",
		Usage: "wallet directory (default $NANSEN_WALLET_DIR or ~/.nansen/wallets)",
	}
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "print machine-readable JSON",
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "enable debug logging",
	}
)

func main() {
	app := cli.NewApp()
	app.Version = Version
	app.Name = "nansen-wallet"
	app.Usage = "local EVM and Solana wallet keystore"
	app.Flags = []cli.Flag{dirFlag, jsonFlag, verboseFlag}
	app.Commands = []*cli.Command{
		&createCommand,
		&listCommand,
		&showCommand,
		&exportCommand,
		&defaultCommand,
		&deleteCommand,
	}
	app.Before = setup

	if err := app.Run(os.Args); err != nil {
		printError(os.Stderr, err, jsonOutput(os.Args))
		os.Exit(1)
	}
}

func setup(ctx *cli.Context) error {
	if err := config.Init(); err != nil {
		return err
	}

	log.SetOutput(os.Stderr)
	level, err := log.ParseLevel(config.GetLogLevel())
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if ctx.Bool(verboseFlag.Name) {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	return nil
}

func openStore(ctx *cli.Context) (*wallet.Store, error) {
	dir := ctx.String(dirFlag.Name)
	if dir == "" {
		dir = config.GetWalletDir()
	}
	log.WithField("dir", dir).Debug("opening wallet store")
	return wallet.NewStore(dir)
}

// resolveName returns the first argument, or the default wallet when none
// is given.
func resolveName(ctx *cli.Context, store *wallet.Store) (string, error) {
	if name := ctx.Args().First(); name != "" {
		return name, nil
	}
	name, err := store.Default()
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", fmt.Errorf("%w: no wallet name given and no default wallet set", model.ErrWalletNotFound)
	}
	return name, nil
}

func requireName(ctx *cli.Context) (string, error) {
	name := ctx.Args().First()
	if name == "" {
		return "", errors.New("wallet name is required")
	}
	return name, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printError(w io.Writer, err error, asJSON bool) {
	if asJSON {
		json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error(), Code: model.ErrorCode(err)})
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}

// jsonOutput detects --json in raw args, for errors raised before or
// outside a command context.
func jsonOutput(args []string) bool {
	for _, a := range args[1:] {
		if a == "--json" || a == "-json" {
			return true
		}
	}
	return false
}
