package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hzhu/sol-swap/config"
	"github.com/hzhu/sol-swap/pkg/history"
)

var historyKind string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past swaps and bridge orders",
	Long: `List the trades recorded by this tool, newest first.

Examples:
  solswap history
  solswap history --kind swap
  solswap history --kind bridge`,
	Run: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyKind, "kind", "", "Filter by record kind (swap or bridge)")
}

func runHistory(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	store, err := history.NewStorage(cfg.HistoryPath)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	var records []*history.Record
	switch historyKind {
	case "":
		records = store.List()
	case string(history.KindSwap), string(history.KindBridge):
		records = store.ListByKind(history.RecordKind(historyKind))
	default:
		printError(fmt.Errorf("unknown kind %q (expected swap or bridge)", historyKind))
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayHistory(records)
}

func displayHistory(records []*history.Record) {
	if len(records) == 0 {
		fmt.Println("\nNo trades recorded yet.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 90))
	color.Green("                                TRADE HISTORY")
	fmt.Println(strings.Repeat("=", 90))
	fmt.Println()

	for _, record := range records {
		kind := string(record.Kind)
		fmt.Printf("  %s  %-6s  %s %s -> %s %s\n",
			record.CreatedAt.Format("2006-01-02 15:04:05"),
			color.YellowString(kind),
			record.SellAmount,
			record.SellSymbol,
			record.BuyAmount,
			record.BuySymbol)

		if record.Signature != "" {
			fmt.Printf("      Tx:    %s\n", color.HiBlackString(record.Signature))
		}
		if record.OrderID != "" {
			fmt.Printf("      Order: %s\n", color.HiBlackString(record.OrderID))
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 90))
	fmt.Printf("\nTotal: %d records\n\n", len(records))
}
