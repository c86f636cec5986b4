package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/MaksRe/solidity-erc20-playground/internal/token"
	"github.com/MaksRe/solidity-erc20-playground/internal/ui"
)

// actionShort holds the one-line help per action. The localized copy is
// resolved at run time; help text stays English like the rest of cobra's
// output.
var actionShort = map[token.ActionKind]string{
	token.ActionTransfer:          "Send tokens to an address",
	token.ActionApprove:           "Set a spender's allowance",
	token.ActionTransferFrom:      "Move tokens between addresses using an allowance",
	token.ActionMint:              "Mint new tokens (owner only)",
	token.ActionBurn:              "Burn tokens from the connected wallet",
	token.ActionBurnFrom:          "Burn tokens from another address using an allowance",
	token.ActionIncreaseAllowance: "Raise a spender's allowance",
	token.ActionDecreaseAllowance: "Lower a spender's allowance",
}

// registerActionCommands adds one subcommand per action descriptor. The
// descriptor table drives which address flags each command carries, the
// same way it drives the console's form rows.
func registerActionCommands(root *cobra.Command) {
	for _, desc := range token.Actions() {
		root.AddCommand(newActionCommand(desc))
	}
}

func newActionCommand(desc token.ActionDescriptor) *cobra.Command {
	flags := struct {
		from, to, spender string
		yes               bool
	}{}

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <amount>", desc.Kind),
		Short: actionShort[desc.Kind],
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := token.NewFormState()
			form.SelectedAction = desc.Kind
			form.From = flags.from
			form.To = flags.to
			form.Spender = flags.spender
			form.Amount = args[0]
			return runAction(form, flags.yes)
		},
	}

	if desc.Requires(token.FieldFrom) {
		cmd.Flags().StringVar(&flags.from, "from", "", "source address")
		cmd.MarkFlagRequired("from")
	}
	if desc.Requires(token.FieldTo) {
		cmd.Flags().StringVar(&flags.to, "to", "", "recipient address")
		cmd.MarkFlagRequired("to")
	}
	if desc.Requires(token.FieldSpender) {
		cmd.Flags().StringVar(&flags.spender, "spender", "", "spender address")
		cmd.MarkFlagRequired("spender")
	}
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// runAction validates the form, confirms with the user, submits the call,
// and waits for the receipt.
func runAction(form *token.FormState, skipConfirm bool) error {
	client, c, err := newRPCClient()
	if err != nil {
		return err
	}

	mgr := newWalletManager()
	account := connectedAddress(mgr)

	cache := token.NewCache(token.NewReader(client))
	cache.SetInputs(cfg.ContractAddress, account, form.Spender)

	env := token.Env{
		ContractAddress: cfg.ContractAddress,
		WalletConnected: account != "",
		Decimals:        cache.DecimalsOrDefault(),
	}
	desc, err := token.Validate(form, env)
	if err != nil {
		return errors.New(localizeErr(err))
	}

	signer, err := mgr.Signer()
	if err != nil {
		return err
	}

	meta := copyTable.Action(string(form.SelectedAction))
	gateway := token.NewGateway(client, signer, big.NewInt(c.ChainID))
	gateway.Approve = func(d *token.CallDescriptor) bool {
		if skipConfirm {
			return true
		}
		printCallPreview(meta.Title, d, env.Decimals)
		return ui.Confirm(meta.Button + "?")
	}

	hash, err := gateway.Submit(desc, cfg.ContractAddress)
	if err != nil {
		if errors.Is(err, token.ErrUserRejected) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		return errors.New(localizeErr(err))
	}

	tracker := token.NewTracker(cache)
	rec := tracker.Begin(hash)
	fmt.Println(ui.Info(fmt.Sprintf("%s %s", copyTable.PendingTx, ui.Addr(hash))))

	sp := ui.NewSpinner("Waiting for confirmation...")
	sp.Start()
	err = tracker.Await(context.Background(), client, rec)
	sp.Stop()
	if err != nil {
		return fmt.Errorf("%s: %w", copyTable.FailedTx, err)
	}

	fmt.Println(ui.Success(fmt.Sprintf("%s %s", copyTable.ConfirmedTx, ui.TruncateAddr(hash))))
	if c.Explorer != "" {
		fmt.Println(ui.Hint(fmt.Sprintf("%s/tx/%s", c.Explorer, hash)))
	}
	printRefreshedReads(cache, account)
	return nil
}

// printCallPreview shows what will be signed before the confirm prompt.
func printCallPreview(title string, desc *token.CallDescriptor, decimals int) {
	rows := [][2]string{
		{"Contract", ui.Addr(cfg.ContractAddress)},
		{"Function", ui.Val(desc.FunctionName)},
	}
	for i, arg := range desc.Args {
		switch v := arg.(type) {
		case *big.Int:
			rows = append(rows, [2]string{fmt.Sprintf("Arg %d", i), ui.Val(token.FormatAmount(v, decimals))})
		default:
			rows = append(rows, [2]string{fmt.Sprintf("Arg %d", i), ui.Addr(fmt.Sprintf("%v", v))})
		}
	}
	fmt.Println(ui.KeyValueBlock(title, rows))
}

// printRefreshedReads shows the post-confirmation balances. The tracker
// already invalidated them, so these reads hit the chain.
func printRefreshedReads(cache *token.Cache, account string) {
	decimals := cache.DecimalsOrDefault()
	rows := [][2]string{}
	if supply, ok := cache.TotalSupply(); ok {
		rows = append(rows, [2]string{copyTable.TotalSupply, amountValue(supply, decimals, cache)})
	}
	if account != "" {
		if bal, ok := cache.Balance(); ok {
			rows = append(rows, [2]string{copyTable.YourBalance, amountValue(bal, decimals, cache)})
		}
	}
	if len(rows) > 0 {
		fmt.Println(ui.KeyValueBlock(copyTable.ReadPanel, rows))
	}
}

// localizeErr maps validation and submission errors to the active copy
// table.
func localizeErr(err error) string {
	var addrErr *token.InvalidAddressError
	var subErr *token.SubmissionError
	switch {
	case errors.Is(err, token.ErrNoContract):
		return copyTable.ErrNoContract
	case errors.Is(err, token.ErrNoWallet):
		return copyTable.ErrNoWallet
	case errors.Is(err, token.ErrInvalidAmount):
		return copyTable.ErrAmount
	case errors.Is(err, token.ErrUserRejected):
		return copyTable.ErrRejected
	case errors.As(err, &addrErr):
		return fmt.Sprintf("%s (%s)", copyTable.ErrAddress, addrErr.Field)
	case errors.As(err, &subErr):
		return subErr.Message
	}
	return err.Error()
}
