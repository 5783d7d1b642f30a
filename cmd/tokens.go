package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hzhu/sol-swap/pkg/token"
)

var filterFragment string

var tokensCmd = &cobra.Command{
	Use:     "list-tokens",
	Aliases: []string{"tokens", "ls"},
	Short:   "List all supported tokens",
	Long: `List the SPL tokens available for swapping.

You can filter tokens by a symbol or name fragment.

Examples:
  solswap list-tokens
  solswap list-tokens --filter usd
  solswap list-tokens --filter bonk`,
	Run: runListTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&filterFragment, "filter", "", "Filter by symbol or name fragment")
}

func runListTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	tokens := token.Catalog
	if filterFragment != "" {
		tokens = token.Filter(filterFragment, 0)
	}

	// Output
	if jsonOutput {
		jsonData, _ := json.MarshalIndent(tokens, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayTokens(tokens)
	}
}

func displayTokens(tokens []token.Token) {
	if len(tokens) == 0 {
		fmt.Println("\nNo tokens found matching the criteria.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 90))
	color.Green("                            SUPPORTED TOKENS")
	fmt.Println(strings.Repeat("=", 90))
	fmt.Println()

	for _, t := range tokens {
		address := t.Address

		// Truncate address if too long
		if len(address) > 44 {
			address = address[:41] + "..."
		}

		fmt.Printf("  %-10s  %2d decimals  %s\n",
			color.YellowString(t.Symbol),
			t.Decimals,
			color.HiBlackString(address))
	}

	fmt.Println("\n" + strings.Repeat("=", 90))
	fmt.Printf("\nTotal: %d tokens\n\n", len(tokens))
}
