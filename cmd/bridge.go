package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hzhu/sol-swap/config"
	"github.com/hzhu/sol-swap/pkg/chain"
	"github.com/hzhu/sol-swap/pkg/dln"
	"github.com/hzhu/sol-swap/pkg/history"
	"github.com/hzhu/sol-swap/pkg/trade"
	"github.com/hzhu/sol-swap/pkg/wallet"
)

var (
	bridgeRecipient string
	bridgeNoConfirm bool
	bridgeQuoteOnly bool
	bridgeNoWait    bool
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge <usdc-amount>",
	Short: "Bridge USDC from Polygon to SOL on Solana",
	Long: `Bridge USDC on Polygon into native SOL through a DLN cross-chain
order. The order transaction is signed and sent on Polygon with the
configured EVM key; a solver fulfills it on Solana.

Examples:
  solswap bridge 25 --recipient 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM
  solswap bridge 100 --recipient <solana-addr> --quote-only
  solswap bridge 50 --recipient <solana-addr> --yes --no-wait`,
	Args: cobra.ExactArgs(1),
	Run:  runBridge,
}

func init() {
	rootCmd.AddCommand(bridgeCmd)

	bridgeCmd.Flags().StringVar(&bridgeRecipient, "recipient", "", "Solana address receiving the SOL (REQUIRED unless --quote-only)")
	bridgeCmd.Flags().BoolVarP(&bridgeNoConfirm, "yes", "y", false, "Skip confirmation prompt")
	bridgeCmd.Flags().BoolVar(&bridgeQuoteOnly, "quote-only", false, "Fetch and display the quote without creating an order")
	bridgeCmd.Flags().BoolVar(&bridgeNoWait, "no-wait", false, "Do not wait for the order ID after sending")
}

func runBridge(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	logger := newLogger(verbose)

	amount, ok := trade.ToSmallestUnit(args[0], dln.PolygonUSDCDecimals)
	if !ok || amount == "" {
		printError(fmt.Errorf("invalid USDC amount %q", args[0]))
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	client := dln.NewClient(cfg.DLNAPIURL, cfg.DLNStatsAPIURL, logger)
	ctx := context.Background()

	quoteParams := dln.QuoteParams{
		SrcChainID:            dln.PolygonChainID,
		SrcChainTokenIn:       dln.PolygonUSDCAddress,
		SrcChainTokenInAmount: amount,
		DstChainID:            dln.SolanaChainID,
		DstChainTokenOut:      dln.NativeSOLAddress,
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching bridge quote..."
		s.Start()
	}

	quote, err := client.GetQuote(ctx, quoteParams)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	receiveAmount, err := trade.FromSmallestUnit(
		quote.Estimation.DstChainTokenOut.RecommendedAmount,
		quote.Estimation.DstChainTokenOut.Decimals)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput && bridgeQuoteOnly {
		jsonData, _ := json.MarshalIndent(quote, "", "  ")
		fmt.Println(string(jsonData))
		return
	}
	if !jsonOutput {
		displayBridgeQuote(args[0], receiveAmount, quote)
	}
	if bridgeQuoteOnly {
		return
	}

	if bridgeRecipient == "" {
		printError(fmt.Errorf("--recipient is required to create a bridge order"))
		os.Exit(1)
	}
	if cfg.EVMRPCURL == "" || cfg.EVMPrivateKey == "" {
		printError(fmt.Errorf("EVM signing not configured. Set SOLSWAP_EVM_RPC_URL and SOLSWAP_EVM_PRIVATE_KEY"))
		os.Exit(1)
	}

	signer, err := wallet.NewEVMSigner(cfg.EVMRPCURL, cfg.EVMPrivateKey)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer signer.Close()

	if err := checkPolygonBalance(ctx, cfg, signer, amount); err != nil {
		printError(err)
		os.Exit(1)
	}

	if !bridgeNoConfirm && !jsonOutput {
		if !confirmBridge() {
			fmt.Println("\nBridge cancelled.")
			os.Exit(0)
		}
	}

	if !jsonOutput {
		s.Suffix = " Creating bridge order..."
		s.Start()
	}

	orderTx, err := client.CreateOrderTx(ctx, dln.CreateTxParams{
		QuoteParams:                   quoteParams,
		DstChainTokenOutAmount:        quote.Estimation.DstChainTokenOut.RecommendedAmount,
		DstChainTokenOutRecipient:     bridgeRecipient,
		SrcChainOrderAuthorityAddress: signer.Address().Hex(),
		DstChainOrderAuthorityAddress: bridgeRecipient,
	})
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	value, err := parseTxValue(orderTx.Tx.Value)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if !jsonOutput {
		s.Suffix = " Sending order transaction on Polygon..."
		s.Start()
	}

	txHash, err := signer.SendTransaction(ctx, orderTx.Tx.To, value, common.FromHex(orderTx.Tx.Data))
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	orderID := ""
	if !bridgeNoWait {
		orderID = waitForOrderID(ctx, client, txHash, jsonOutput)
	}

	recordBridge(cfg, args[0], receiveAmount, txHash, orderID, logger)

	if jsonOutput {
		output := map[string]interface{}{
			"tx_hash":  txHash,
			"order_id": orderID,
			"status":   "submitted",
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	color.Green("\n✓ Bridge order sent!")
	fmt.Printf("  Polygon Tx: %s\n", color.CyanString(txHash))
	if orderID != "" {
		fmt.Printf("  Order ID:   %s\n", color.CyanString(orderID))
		fmt.Println("\nYou can monitor the order using:")
		color.Cyan("  solswap status %s\n", orderID)
	} else {
		fmt.Println("\nOnce indexed, look up the order using:")
		color.Cyan("  solswap status --tx %s\n", txHash)
	}
}

// checkPolygonBalance verifies the signer holds enough USDC on Polygon to
// cover the order.
func checkPolygonBalance(ctx context.Context, cfg *config.Config, signer *wallet.EVMSigner, amount string) error {
	client, err := chain.NewEVMClient(cfg.EVMRPCURL)
	if err != nil {
		return err
	}
	defer client.Close()

	balance, err := client.TokenBalance(ctx, dln.PolygonUSDCAddress, signer.Address().Hex(), dln.PolygonUSDCDecimals)
	if err != nil {
		return fmt.Errorf("failed to check USDC balance: %w", err)
	}

	have, haveOK := new(big.Int).SetString(balance.Amount, 10)
	want, wantOK := new(big.Int).SetString(amount, 10)
	if !haveOK || !wantOK || have.Cmp(want) < 0 {
		need, err := trade.FromSmallestUnit(amount, dln.PolygonUSDCDecimals)
		if err != nil {
			need = amount
		}
		return fmt.Errorf("insufficient USDC on Polygon: have %s, need %s",
			balance.UIAmountString, need)
	}

	return nil
}

// waitForOrderID polls the stats API until the source transaction is indexed.
// Order indexing lags the transaction by a few blocks.
func waitForOrderID(ctx context.Context, client *dln.Client, txHash string, jsonOutput bool) string {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Waiting for the order to be indexed..."
		s.Start()
		defer s.Stop()
	}

	deadline := time.Now().Add(2 * time.Minute)
	for time.Now().Before(deadline) {
		ids, err := client.OrderIDsByTxHash(ctx, txHash)
		if err == nil && len(ids) > 0 {
			return ids[0]
		}
		time.Sleep(5 * time.Second)
	}

	return ""
}

// parseTxValue parses the order API's transaction value in either decimal or
// hex form.
func parseTxValue(raw string) (*big.Int, error) {
	if raw == "" {
		return big.NewInt(0), nil
	}

	value := new(big.Int)
	if strings.HasPrefix(raw, "0x") {
		if _, ok := value.SetString(strings.TrimPrefix(raw, "0x"), 16); !ok {
			return nil, fmt.Errorf("invalid transaction value %q", raw)
		}
		return value, nil
	}

	if _, ok := value.SetString(raw, 10); !ok {
		return nil, fmt.Errorf("invalid transaction value %q", raw)
	}
	return value, nil
}

func recordBridge(cfg *config.Config, sellAmount, buyAmount, txHash, orderID string, logger *logrus.Logger) {
	store, err := history.NewStorage(cfg.HistoryPath)
	if err != nil {
		logger.Warnf("history unavailable: %v", err)
		return
	}

	record := history.NewRecord(history.KindBridge)
	record.SellSymbol = "USDC"
	record.SellAmount = sellAmount
	record.BuySymbol = "SOL"
	record.BuyAmount = buyAmount
	record.Signature = txHash
	record.OrderID = orderID

	if err := store.Add(record); err != nil {
		logger.Warnf("failed to record bridge order: %v", err)
	}
}

func displayBridgeQuote(sellAmount, receiveAmount string, quote *dln.Quote) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                    BRIDGE QUOTE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  Send:              %s %s (Polygon)\n", sellAmount, color.YellowString("USDC"))
	fmt.Printf("  Receive:           ~%s %s (Solana)\n", receiveAmount, color.YellowString("SOL"))
	if usd := quote.Estimation.DstChainTokenOut.ApproximateUsd; usd > 0 {
		fmt.Printf("  Approx. Value:     $%.2f\n", usd)
	}

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}

func confirmBridge() bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("\nProceed with bridge order? (y/N): ")

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
