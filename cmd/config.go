package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/MaksRe/solidity-erc20-playground/internal/chain"
	"github.com/MaksRe/solidity-erc20-playground/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		contract := cfg.ContractAddress
		if contract == "" {
			contract = ui.Meta(copyTable.NotSet)
		} else {
			contract = ui.Addr(contract)
		}
		chainLabel := fmt.Sprintf("%d", cfg.ChainID)
		if c, err := resolveChain(); err == nil {
			chainLabel = fmt.Sprintf("%s (%d)", c.DisplayName, c.ChainID)
		}
		fmt.Println(ui.KeyValueBlock("Configuration", [][2]string{
			{"Contract", contract},
			{"Chain", ui.Val(chainLabel)},
			{"Language", ui.Val(cfg.Language)},
			{"Config dir", ui.Meta(cfg.Dir())},
		}))
		return nil
	},
}

var configSetContractCmd = &cobra.Command{
	Use:   "set-contract <address>",
	Short: "Set the token contract address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := args[0]
		if !strings.HasPrefix(addr, "0x") || !common.IsHexAddress(addr) {
			return fmt.Errorf("invalid address %q", addr)
		}
		cfg.ContractAddress = addr
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Contract set to %s", ui.Addr(addr))))
		return nil
	},
}

var configSetChainCmd = &cobra.Command{
	Use:   "set-chain <name-or-id>",
	Short: "Set the active chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := chain.NewRegistry()
		c, err := reg.GetByName(args[0])
		if err != nil {
			id, convErr := strconv.ParseInt(args[0], 10, 64)
			if convErr != nil {
				return err
			}
			c, err = reg.GetByID(id)
			if err != nil {
				return err
			}
		}
		cfg.ChainID = c.ChainID
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Chain set to %s (%d)", c.DisplayName, c.ChainID)))
		return nil
	},
}

var configSetLanguageCmd = &cobra.Command{
	Use:   "set-language <tag>",
	Short: "Set the UI language (en, ru)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Language = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Language set to %s", cfg.Language)))
		return nil
	},
}

var configChainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List supported chains",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := chain.NewRegistry()
		for _, c := range reg.All() {
			mark := " "
			if c.ChainID == cfg.ChainID {
				mark = ui.StyleSuccess.Render("●")
			}
			fmt.Printf("  %s %s %s %s\n", mark, ui.Val(padName(c.Name)),
				ui.Meta(fmt.Sprintf("%-10d", c.ChainID)), ui.Addr(c.RPCURL))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetContractCmd, configSetChainCmd, configSetLanguageCmd, configChainsCmd)
}
