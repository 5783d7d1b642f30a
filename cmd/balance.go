package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/hzhu/sol-swap/config"
	"github.com/hzhu/sol-swap/pkg/chain"
	"github.com/hzhu/sol-swap/pkg/token"
)

var balanceOwner string

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show SOL and SPL token balances",
	Long: `Show the native SOL balance and all SPL token account balances for an
address. Without an argument the configured wallet's address is used.

Examples:
  solswap balance
  solswap balance 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	logger := newLogger(verbose)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	owner, err := resolveOwner(cfg, args)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	client := chain.NewSolanaClient(cfg.SolanaRPCURL, cfg.Commitment, logger)
	ctx := context.Background()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching balances..."
		s.Start()
	}

	native, nativeErr := client.NativeBalance(ctx, owner)
	accounts, accountsErr := client.TokenAccounts(ctx, owner)

	if !jsonOutput {
		s.Stop()
	}

	if nativeErr != nil {
		printError(nativeErr)
		os.Exit(1)
	}
	if accountsErr != nil {
		printError(accountsErr)
		os.Exit(1)
	}

	if jsonOutput {
		output := map[string]interface{}{
			"address":        owner.String(),
			"native_balance": native,
			"token_accounts": accounts,
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayBalances(owner, native, accounts)
}

// resolveOwner picks the queried address: an explicit argument wins, then the
// configured wallet.
func resolveOwner(cfg *config.Config, args []string) (solana.PublicKey, error) {
	if len(args) == 1 {
		owner, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("invalid address %q: %w", args[0], err)
		}
		return owner, nil
	}

	if err := cfg.RequireSigner(); err != nil {
		return solana.PublicKey{}, fmt.Errorf("no address given and %w", err)
	}

	signer, err := buildWallet(cfg)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return signer.PublicKey(), nil
}

func displayBalances(owner solana.PublicKey, native *chain.Balance, accounts []chain.TokenAccount) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                         WALLET BALANCES")
	fmt.Println(strings.Repeat("=", 70))

	fmt.Printf("\n  Address: %s\n\n", color.CyanString(owner.String()))
	fmt.Printf("  %-10s  %s\n", color.YellowString("SOL"), native.UIAmountString)

	for _, account := range accounts {
		symbol := account.Mint
		if t, err := token.FindByAddress(account.Mint); err == nil {
			symbol = t.Symbol
		} else if len(symbol) > 10 {
			symbol = symbol[:7] + "..."
		}

		fmt.Printf("  %-10s  %s\n", color.YellowString(symbol), account.Balance.UIAmountString)
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}
