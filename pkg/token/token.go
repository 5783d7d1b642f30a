package token

import (
	"fmt"
	"strings"
)

// Token is an immutable reference datum from the static catalog. Tokens are
// looked up here, never constructed by trade logic.
type Token struct {
	Address  string   `json:"address"`
	ChainID  int      `json:"chainId"`
	Decimals uint8    `json:"decimals"`
	Name     string   `json:"name"`
	Symbol   string   `json:"symbol"`
	LogoURI  string   `json:"logoURI"`
	Tags     []string `json:"tags,omitempty"`
}

// WrappedSOL is the mint address representing native SOL in swap routes.
const WrappedSOL = "So11111111111111111111111111111111111111112"

// USDCMint is the USDC mint address on Solana mainnet.
const USDCMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

// Find searches the catalog for a token by symbol. Exact matches win over
// partial matches.
func Find(symbol string) (Token, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	for _, t := range Catalog {
		if strings.ToUpper(t.Symbol) == symbol {
			return t, nil
		}
	}

	for _, t := range Catalog {
		if strings.Contains(strings.ToUpper(t.Symbol), symbol) {
			return t, nil
		}
	}

	return Token{}, fmt.Errorf("token '%s' not found", symbol)
}

// FindByAddress looks up a token by its mint address.
func FindByAddress(address string) (Token, error) {
	for _, t := range Catalog {
		if t.Address == address {
			return t, nil
		}
	}
	return Token{}, fmt.Errorf("token with address '%s' not found", address)
}

// Filter returns catalog tokens whose symbol or name contains the given
// fragment, case-insensitively, capped at limit (0 means no cap).
func Filter(fragment string, limit int) []Token {
	fragment = strings.ToLower(fragment)

	matched := make([]Token, 0)
	for _, t := range Catalog {
		if strings.Contains(strings.ToLower(t.Symbol), fragment) ||
			strings.Contains(strings.ToLower(t.Name), fragment) {
			matched = append(matched, t)
			if limit > 0 && len(matched) == limit {
				break
			}
		}
	}

	return matched
}

// IsNativeSOL reports whether the token represents the chain's native asset.
func (t Token) IsNativeSOL() bool {
	return t.Address == WrappedSOL
}
