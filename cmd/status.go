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
	"github.com/spf13/cobra"

	"github.com/hzhu/sol-swap/config"
	"github.com/hzhu/sol-swap/pkg/dln"
	"github.com/hzhu/sol-swap/pkg/trade"
)

var (
	watchStatus   bool
	watchInterval int
	statusTxHash  string
)

var statusCmd = &cobra.Command{
	Use:   "status [order-id]",
	Short: "Check the status of a bridge order",
	Long: `Check the fulfillment status of a DLN bridge order by its order ID, or
look the order up by the Polygon transaction that created it.

Examples:
  solswap status 0x1234...abcd
  solswap status --tx 0xdead...beef
  solswap status 0x1234...abcd --watch
  solswap status 0x1234...abcd --watch --interval 10`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Watch status updates until the order completes")
	statusCmd.Flags().IntVar(&watchInterval, "interval", 5, "Polling interval in seconds (when watching)")
	statusCmd.Flags().StringVar(&statusTxHash, "tx", "", "Look up the order by its creation transaction hash")
}

func runStatus(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	logger := newLogger(verbose)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	client := dln.NewClient(cfg.DLNAPIURL, cfg.DLNStatsAPIURL, logger)
	ctx := context.Background()

	orderID, err := resolveOrderID(ctx, client, args)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if watchStatus {
		watchOrderStatus(ctx, client, orderID, jsonOutput)
	} else {
		checkOrderStatus(ctx, client, orderID, jsonOutput)
	}
}

// resolveOrderID accepts either an explicit order ID argument or a --tx hash
// to look one up.
func resolveOrderID(ctx context.Context, client *dln.Client, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if statusTxHash == "" {
		return "", fmt.Errorf("provide an order ID or --tx <hash>")
	}

	ids, err := client.OrderIDsByTxHash(ctx, statusTxHash)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no orders found for transaction %s (it may not be indexed yet)", statusTxHash)
	}

	return ids[0], nil
}

func checkOrderStatus(ctx context.Context, client *dln.Client, orderID string, jsonOutput bool) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Checking order status..."
		s.Start()
	}

	status, err := client.GetOrderStatus(ctx, orderID)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(status, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayStatus(status, orderID)
	}
}

func watchOrderStatus(ctx context.Context, client *dln.Client, orderID string, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
		os.Exit(1)
	}

	fmt.Printf("\nWatching order status (Order ID: %s)\n", color.CyanString(orderID))
	fmt.Printf("Checking every %d seconds. Press Ctrl+C to stop.\n\n", watchInterval)

	ticker := time.NewTicker(time.Duration(watchInterval) * time.Second)
	defer ticker.Stop()

	// Check immediately first
	if checkAndDisplayStatus(ctx, client, orderID) {
		return
	}

	// Then check periodically until the order settles
	for range ticker.C {
		if checkAndDisplayStatus(ctx, client, orderID) {
			return
		}
	}
}

// checkAndDisplayStatus shows the current status and reports whether the
// order reached a terminal state.
func checkAndDisplayStatus(ctx context.Context, client *dln.Client, orderID string) bool {
	status, err := client.GetOrderStatus(ctx, orderID)
	if err != nil {
		color.Red("Error: %v", err)
		return false
	}

	displayStatus(status, orderID)

	return status.Completed() || status.Cancelled()
}

func displayStatus(status *dln.OrderStatus, orderID string) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                        ORDER STATUS")
	fmt.Println(strings.Repeat("=", 70))

	fmt.Printf("\n  Order ID:     %s\n", color.CyanString(orderID))
	fmt.Printf("  Status:       %s\n", getColoredStatus(status.State))

	if amount := formatOfferAmount(status.GiveOfferWithMetadata); amount != "" {
		fmt.Printf("  Sent:         %s %s\n", amount, status.GiveOfferWithMetadata.Symbol)
	}
	if amount := formatOfferAmount(status.TakeOfferWithMetadata); amount != "" {
		fmt.Printf("  Receiving:    %s %s\n", amount, status.TakeOfferWithMetadata.Symbol)
	}

	if hash := status.CreateTxHash(); hash != "" {
		fmt.Printf("  Creation Tx:  %s\n", color.HiBlackString(hash))
	}
	if hash := status.FulfillTxHash(); hash != "" {
		fmt.Printf("  Fulfill Tx:   %s\n", color.HiBlackString(hash))
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}

// formatOfferAmount converts an offer's smallest-unit amount to human units.
func formatOfferAmount(offer dln.OfferWithMetadata) string {
	if offer.Amount.StringValue == "" {
		return ""
	}

	amount, err := trade.FromSmallestUnit(offer.Amount.StringValue, offer.Metadata.Decimals)
	if err != nil {
		return offer.Amount.StringValue
	}
	return amount
}

func getColoredStatus(state string) string {
	switch state {
	case "Fulfilled", "SentUnlock", "ClaimedUnlock":
		return color.GreenString(state)
	case "Created":
		return color.YellowString(state)
	case "OrderCancelled", "SentOrderCancel", "ClaimedOrderCancel":
		return color.RedString(state)
	default:
		return state
	}
}
