package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "solswap",
	Short: "A CLI for swapping Solana tokens and bridging from Polygon",
	Long: `solswap is a command-line tool for trading SPL tokens through the
Jupiter aggregator and for bridging USDC from Polygon to Solana through
DLN cross-chain orders.

Examples:
  solswap swap 1 SOL to USDC
  solswap balance
  solswap bridge 25 --recipient <solana-addr>
  solswap list-tokens
  solswap status <order-id>
  solswap history`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}

// newLogger builds the shared logger honoring the verbose flag.
func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}
