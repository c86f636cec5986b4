package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MaksRe/solidity-erc20-playground/internal/ui"
)

var walletKeyFlag string

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage signing wallets",
}

var walletImportCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Import a wallet from a private key",
	Long: `Import a signing wallet. The private key is stored in the OS keyring
(or an encrypted file on headless Linux); only the derived address is
kept in the wallet list.

Examples:
  playground wallet import dev --key 0xac09...f80
  playground wallet import dev            # prompts for the key`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		key := walletKeyFlag
		if key == "" {
			var err error
			key, err = ui.PromptSecret("Private key (hex): ")
			if err != nil {
				return err
			}
		}

		mgr := newWalletManager()
		w, err := mgr.Import(name, key)
		if err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q imported: %s", name, ui.Addr(w.Address))))
		fmt.Println(ui.Hint(fmt.Sprintf("Connect it with: playground wallet connect %s", name)))
		return nil
	},
}

var walletConnectCmd = &cobra.Command{
	Use:   "connect <name>",
	Short: "Connect a wallet",
	Long:  "Connect a wallet. Write actions sign with the connected wallet; balance and allowance reads key off its address.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()
		w, err := mgr.Connect(args[0])
		if err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Connected %q (%s)", w.Name, ui.Addr(w.Address))))
		return nil
	},
}

var walletDisconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect the current wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()
		if err := mgr.Disconnect(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Wallet disconnected."))
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()
		wallets, err := mgr.List()
		if err != nil {
			return err
		}
		if len(wallets) == 0 {
			fmt.Println(ui.Info("No wallets imported yet."))
			fmt.Println(ui.Hint("Import one with: playground wallet import dev --key 0x..."))
			return nil
		}
		for _, w := range wallets {
			mark := " "
			if w.Connected {
				mark = ui.StyleSuccess.Render("●")
			}
			fmt.Printf("  %s %s %s\n", mark, ui.Val(padName(w.Name)), ui.Addr(w.Address))
		}
		fmt.Println(ui.Meta(fmt.Sprintf("  %d wallet(s)", len(wallets))))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !ui.Confirm(fmt.Sprintf("Remove wallet %q and delete its key?", name)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		mgr := newWalletManager()
		if err := mgr.Remove(name); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

func padName(name string) string {
	for len(name) < 14 {
		name += " "
	}
	return name
}

func init() {
	walletImportCmd.Flags().StringVar(&walletKeyFlag, "key", "", "hex private key (prompted when omitted)")
	walletCmd.AddCommand(walletImportCmd, walletConnectCmd, walletDisconnectCmd, walletListCmd, walletRemoveCmd)
}
