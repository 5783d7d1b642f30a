package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	SolanaRPCURL string
	Commitment   string
	KeypairPath  string
	PrivateKey   string

	QuoteAPIURL    string
	DLNAPIURL      string
	DLNStatsAPIURL string

	SlippageBps    int
	DebounceWaitMs int

	EVMRPCURL     string
	EVMPrivateKey string

	HistoryPath string
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".solswap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("solana_rpc_url", "https://api.mainnet-beta.solana.com")
	viper.SetDefault("commitment", "confirmed")
	viper.SetDefault("quote_api_url", "https://quote-api.jup.ag/v6")
	viper.SetDefault("dln_api_url", "https://api.dln.trade/v1.0")
	viper.SetDefault("dln_stats_api_url", "https://stats-api.dln.trade")
	viper.SetDefault("slippage_bps", 25)
	viper.SetDefault("debounce_wait_ms", 500)

	// Read from environment variables
	viper.SetEnvPrefix("SOLSWAP")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	// Create config struct
	cfg := &Config{
		SolanaRPCURL:   viper.GetString("solana_rpc_url"),
		Commitment:     viper.GetString("commitment"),
		KeypairPath:    viper.GetString("keypair_path"),
		PrivateKey:     viper.GetString("private_key"),
		QuoteAPIURL:    viper.GetString("quote_api_url"),
		DLNAPIURL:      viper.GetString("dln_api_url"),
		DLNStatsAPIURL: viper.GetString("dln_stats_api_url"),
		SlippageBps:    viper.GetInt("slippage_bps"),
		DebounceWaitMs: viper.GetInt("debounce_wait_ms"),
		EVMRPCURL:      viper.GetString("evm_rpc_url"),
		EVMPrivateKey:  viper.GetString("evm_private_key"),
		HistoryPath:    viper.GetString("history_path"),
	}

	globalConfig = cfg
	return cfg, nil
}

// RequireSigner validates that a Solana signing key is configured. Read-only
// commands work without one.
func (c *Config) RequireSigner() error {
	if c.KeypairPath == "" && c.PrivateKey == "" {
		return fmt.Errorf("no wallet configured. Set SOLSWAP_KEYPAIR_PATH or SOLSWAP_PRIVATE_KEY, or add keypair_path to .solswap.yaml")
	}
	return nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
