package cmd

import (
	"math/big"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/MaksRe/solidity-erc20-playground/internal/token"
	"github.com/MaksRe/solidity-erc20-playground/internal/ui"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive action console",
	Long: `Open the interactive console: a live read panel plus an action form.
Pick an action with ←/→, fill the fields it needs, and submit with
enter on the submit row. Only one transaction can be pending at a
time; the read panel refreshes itself after each confirmation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, c, err := newRPCClient()
		if err != nil {
			return err
		}

		mgr := newWalletManager()
		account := connectedAddress(mgr)

		cache := token.NewCache(token.NewReader(client))
		tracker := token.NewTracker(cache)
		gateway := token.NewGateway(client, nil, big.NewInt(c.ChainID))
		if account != "" {
			signer, err := mgr.Signer()
			if err != nil {
				return err
			}
			gateway = token.NewGateway(client, signer, big.NewInt(c.ChainID))
		}

		model := ui.NewConsole(copyTable, cfg.ContractAddress, account,
			token.NewFormState(), cache, tracker, gateway, receiptSource{client: client})

		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}
