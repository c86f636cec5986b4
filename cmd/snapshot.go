package cmd

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/MaksRe/solidity-erc20-playground/internal/token"
	"github.com/MaksRe/solidity-erc20-playground/internal/ui"
)

var snapshotSpender string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Show the token read panel",
	Long: `Fetch and print the contract's read state: name, symbol, decimals,
total supply, and owner, plus the connected wallet's balance and, with
--spender, its allowance toward that spender.

Queries without their inputs are skipped rather than shown as zero:
no contract means nothing is fetched, no connected wallet means no
balance row, no --spender means no allowance row.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.ContractAddress == "" {
			fmt.Println(ui.Warn(copyTable.ProvideContract))
			fmt.Println(ui.Hint("playground config set-contract <address>"))
			return nil
		}

		client, c, err := newRPCClient()
		if err != nil {
			return err
		}
		account := connectedAddress(newWalletManager())

		sp := ui.NewSpinner("Fetching token state...")
		sp.Start()
		cache := token.NewCache(token.NewReader(client))
		cache.SetInputs(cfg.ContractAddress, account, snapshotSpender)
		sp.Stop()

		decimals := cache.DecimalsOrDefault()
		rows := [][2]string{
			{"Contract", ui.Addr(cfg.ContractAddress)},
			{"Chain", ui.Val(fmt.Sprintf("%s (%d)", c.DisplayName, c.ChainID))},
			{copyTable.Token, tokenLine(cache)},
			{copyTable.Decimals, readValue(cache, token.QueryDecimals, func(v any) string {
				return ui.Val(fmt.Sprintf("%d", v.(uint8)))
			})},
			{copyTable.TotalSupply, readValue(cache, token.QueryTotalSupply, func(v any) string {
				return amountValue(v.(*big.Int), decimals, cache)
			})},
			{copyTable.Owner, readValue(cache, token.QueryOwner, func(v any) string {
				return ui.Addr(v.(string))
			})},
		}

		if account != "" {
			rows = append(rows, [2]string{copyTable.YourBalance, readValue(cache, token.QueryBalance, func(v any) string {
				return amountValue(v.(*big.Int), decimals, cache)
			})})
		} else {
			rows = append(rows, [2]string{copyTable.YourBalance, ui.Meta(copyTable.NotConnected)})
		}

		if snapshotSpender != "" {
			rows = append(rows, [2]string{copyTable.AllowanceSpender, readValue(cache, token.QueryAllowance, func(v any) string {
				return amountValue(v.(*big.Int), decimals, cache)
			})})
		}

		fmt.Println(ui.KeyValueBlock(copyTable.ReadPanel, rows))
		return nil
	},
}

// readValue renders one cache entry: skipped when disabled, N/A on fetch
// error, otherwise formatted by render.
func readValue(cache *token.Cache, key token.QueryKey, render func(any) string) string {
	if !cache.Enabled(key) {
		return ui.Meta(copyTable.NA)
	}
	v, ok := cache.Value(key)
	if !ok {
		if err := cache.Err(key); err != nil {
			return ui.Err(err.Error())
		}
		return ui.Meta(copyTable.NA)
	}
	return render(v)
}

func tokenLine(cache *token.Cache) string {
	name, okName := cache.TokenName()
	symbol, okSym := cache.TokenSymbol()
	if !okName && !okSym {
		return ui.Meta(copyTable.NA)
	}
	return ui.Val(fmt.Sprintf("%s (%s)", name, symbol))
}

func amountValue(v *big.Int, decimals int, cache *token.Cache) string {
	line := ui.Val(token.FormatAmount(v, decimals))
	if symbol, ok := cache.TokenSymbol(); ok {
		line += " " + ui.Meta(symbol)
	}
	return line
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotSpender, "spender", "", "address to query the connected wallet's allowance for")
}
