package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hzhu/sol-swap/config"
	"github.com/hzhu/sol-swap/pkg/chain"
	"github.com/hzhu/sol-swap/pkg/history"
	"github.com/hzhu/sol-swap/pkg/jupiter"
	"github.com/hzhu/sol-swap/pkg/parser"
	"github.com/hzhu/sol-swap/pkg/token"
	"github.com/hzhu/sol-swap/pkg/trade"
	"github.com/hzhu/sol-swap/pkg/wallet"
)

var (
	slippageBps int
	noConfirm   bool
	quoteOnly   bool
)

// quoteWait bounds how long the swap command waits for the debounced quote
// to resolve.
const quoteWait = 30 * time.Second

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <sell-token> to <buy-token>",
	Short: "Swap SPL tokens through the Jupiter aggregator",
	Long: `Swap tokens on Solana using Jupiter aggregator quotes.

The command fetches a quote for the pair, shows the expected receive
amount, and after confirmation signs and sends the swap transaction with
the configured wallet.

Examples:
  solswap swap 1 SOL to USDC
  solswap swap 100 USDC to JUP --slippage-bps 50
  solswap swap 0.5 SOL to BONK --quote-only
  solswap swap 1 SOL to USDC --yes`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().IntVar(&slippageBps, "slippage-bps", 0, "Slippage tolerance in basis points (default from config)")
	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
	swapCmd.Flags().BoolVar(&quoteOnly, "quote-only", false, "Fetch and display the quote without submitting")
}

func runSwap(cmd *cobra.Command, args []string) {
	// Parse the command
	commandStr := strings.Join(args, " ")
	swapReq, err := parser.ParseSwapCommand(commandStr)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	sellToken, err := token.Find(parser.NormalizeTokenSymbol(swapReq.SourceToken))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	buyToken, err := token.Find(parser.NormalizeTokenSymbol(swapReq.DestToken))
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	logger := newLogger(verbose)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if slippageBps == 0 {
		slippageBps = cfg.SlippageBps
	}

	var signer wallet.Wallet
	if !quoteOnly {
		if err := cfg.RequireSigner(); err != nil {
			printError(err)
			os.Exit(1)
		}
		signer, err = buildWallet(cfg)
		if err != nil {
			printError(err)
			os.Exit(1)
		}
	}

	ctx := context.Background()

	controller := trade.NewController(trade.Config{
		Quotes:       jupiter.NewClient(cfg.QuoteAPIURL, logger),
		Wallet:       signer,
		Balances:     chain.NewSolanaClient(cfg.SolanaRPCURL, cfg.Commitment, logger),
		SlippageBps:  slippageBps,
		DebounceWait: time.Duration(cfg.DebounceWaitMs) * time.Millisecond,
		Logger:       logger,
	})
	controller.Start(ctx)
	defer controller.Stop()

	controller.Dispatch(trade.SetSellToken{Token: sellToken})
	controller.Dispatch(trade.SetBuyToken{Token: buyToken})

	// Get quote with spinner
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching quote..."
		s.Start()
	}

	state, err := fetchQuoteState(controller, swapReq.Amount)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		if verbose {
			fmt.Printf("\nDebug: Error getting quote: %v\n", err)
			fmt.Printf("Debug: This might be due to:\n")
			fmt.Printf("  1. An unsupported token pair (try: solswap list-tokens)\n")
			fmt.Printf("  2. An amount below the pair's minimum\n")
			fmt.Printf("  3. Aggregator API downtime\n")
		}
		printError(err)
		os.Exit(1)
	}

	if verbose {
		fmt.Printf("\nQuote received:\n")
		quoteJSON, _ := json.MarshalIndent(state.QuoteResponse, "", "  ")
		fmt.Println(string(quoteJSON))
	}

	// Display quote
	if jsonOutput {
		output := map[string]interface{}{
			"sell_amount":  state.SellAmount,
			"sell_token":   state.SellToken.Symbol,
			"buy_amount":   state.BuyAmount,
			"buy_token":    state.BuyToken.Symbol,
			"slippage_bps": slippageBps,
			"status":       "quote_generated",
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayQuote(controller, state)
	}

	if quoteOnly {
		return
	}

	if controller.InsufficientBalance() {
		printError(fmt.Errorf("insufficient %s balance for this swap", state.SellToken.Symbol))
		os.Exit(1)
	}

	// Ask for confirmation
	if !noConfirm && !jsonOutput {
		if !confirmSwap() {
			fmt.Println("\nSwap cancelled.")
			os.Exit(0)
		}
	}

	if !jsonOutput {
		s.Suffix = " Submitting swap transaction..."
		s.Start()
	}

	signature, err := controller.Submit(ctx)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	recordSwap(cfg, state, signature, logger)

	if jsonOutput {
		output := map[string]interface{}{
			"signature": signature,
			"status":    "submitted",
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	color.Green("\n✓ Swap transaction sent!")
	fmt.Printf("  Signature: %s\n", color.CyanString(signature))
	fmt.Printf("  Explorer:  %s\n", color.HiBlackString("https://solscan.io/tx/"+signature))
	printSuccess("Done.")
}

// fetchQuoteState feeds the sell amount through the controller and waits for
// the debounced quote synchronization to settle.
func fetchQuoteState(controller *trade.Controller, amount string) (trade.State, error) {
	done := make(chan trade.State, 1)

	// Notifications arrive on controller goroutines; the flag needs a lock.
	var mu sync.Mutex
	sawFetching := false

	unsubscribe := controller.Subscribe(func(s trade.State) {
		mu.Lock()
		defer mu.Unlock()

		if s.FetchingQuote {
			sawFetching = true
			return
		}
		if sawFetching {
			select {
			case done <- s:
			default:
			}
		}
	})
	defer unsubscribe()

	if err := controller.SetSellAmountInput(amount); err != nil {
		return trade.State{}, err
	}

	select {
	case state := <-done:
		if state.QuoteResponse == nil {
			return state, fmt.Errorf("no quote available for %s %s to %s",
				amount, state.SellToken.Symbol, state.BuyToken.Symbol)
		}
		return state, nil
	case <-time.After(quoteWait):
		return trade.State{}, fmt.Errorf("timed out waiting for a quote")
	}
}

// buildWallet creates the signing wallet from whichever key source the
// configuration provides.
func buildWallet(cfg *config.Config) (wallet.Wallet, error) {
	if cfg.KeypairPath != "" {
		return wallet.NewKeypairWallet(cfg.SolanaRPCURL, cfg.KeypairPath, cfg.Commitment)
	}
	return wallet.NewKeypairWalletFromBase58(cfg.SolanaRPCURL, cfg.PrivateKey, cfg.Commitment)
}

func recordSwap(cfg *config.Config, state trade.State, signature string, logger *logrus.Logger) {
	store, err := history.NewStorage(cfg.HistoryPath)
	if err != nil {
		logger.Warnf("history unavailable: %v", err)
		return
	}

	record := history.NewRecord(history.KindSwap)
	record.SellSymbol = state.SellToken.Symbol
	record.SellAmount = state.SellAmount
	record.BuySymbol = state.BuyToken.Symbol
	record.BuyAmount = state.BuyAmount
	record.Signature = signature
	record.SlippageBps = slippageBps

	if err := store.Add(record); err != nil {
		logger.Warnf("failed to record swap: %v", err)
	}
}

func displayQuote(controller *trade.Controller, state trade.State) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     SWAP QUOTE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  Sell:              %s %s\n", state.SellAmount, color.YellowString(state.SellToken.Symbol))
	fmt.Printf("  Receive:           ~%s %s\n", state.BuyAmount, color.YellowString(state.BuyToken.Symbol))
	fmt.Printf("  Slippage:          %d bps\n", slippageBps)

	if balance := controller.DisplayBalance(); balance != nil {
		fmt.Printf("  %s Balance:       %s\n", state.SellToken.Symbol, balance.UIAmountString)
	}

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}

func confirmSwap() bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("\nProceed with swap? (y/N): ")

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
