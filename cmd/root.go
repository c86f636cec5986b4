package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MaksRe/solidity-erc20-playground/internal/config"
	"github.com/MaksRe/solidity-erc20-playground/internal/i18n"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/MaksRe/solidity-erc20-playground/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir       string
	cfg          *config.Config
	copyTable    *i18n.Copy
	contractFlag string
	langFlag     string
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "playground",
	Short: "ERC-20 playground client",
	Long: `playground — terminal client for the ERC-20 playground contract.

  Inspect token state, connect a wallet, and run token actions
  (transfer, approve, mint, burn, allowance management) against a
  local Anvil node or Sepolia.

The contract address and chain come from config; override the contract
per invocation with --contract, or persist with:
  playground config set-contract <address>`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config (skip for commands that don't need it).
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if contractFlag != "" {
			cfg.ContractAddress = contractFlag
		}
		if langFlag != "" {
			cfg.Language = langFlag
		}
		copyTable = i18n.Resolve(cfg.Language)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default: ~/.playground)")
	rootCmd.PersistentFlags().StringVar(&contractFlag, "contract", "", "token contract address for this invocation")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "UI language (en, ru)")

	rootCmd.AddCommand(
		walletCmd,
		snapshotCmd,
		consoleCmd,
		configCmd,
	)
	registerActionCommands(rootCmd)
}
