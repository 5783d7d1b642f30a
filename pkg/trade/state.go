package trade

import (
	"github.com/hzhu/sol-swap/pkg/chain"
	"github.com/hzhu/sol-swap/pkg/jupiter"
	"github.com/hzhu/sol-swap/pkg/token"
)

// State is the single source of truth for one in-progress trade. It is
// mutated exclusively through the reducer, one event at a time.
type State struct {
	SellToken token.Token
	BuyToken  token.Token

	// Human-unit decimal strings. BuyAmount is only ever derived from the
	// latest accepted quote.
	SellAmount string
	BuyAmount  string

	// Raw picker input text, tracked so token search boxes follow selection.
	SellSymbolInput string
	BuySymbolInput  string

	FetchingQuote bool
	QuoteResponse *jupiter.Quote

	IsSwapping         bool
	TransactionReceipt string

	// Externally-fetched snapshots, display/validation only. May be stale;
	// never block state transitions.
	NativeBalance *chain.Balance
	TokenAccounts []chain.TokenAccount
}

// Event is a discrete input to the reducer.
type Event interface {
	isEvent()
}

// SetSellToken replaces the sell-side token. Selecting the current buy token
// reverses the trade direction instead.
type SetSellToken struct{ Token token.Token }

// SetBuyToken replaces the buy-side token, symmetric to SetSellToken.
type SetBuyToken struct{ Token token.Token }

// ReverseTradeDirection swaps the sell and buy sides atomically.
type ReverseTradeDirection struct{}

// SetSellAmount stores the raw user-entered amount string verbatim. Numeric
// shape is validated at the input boundary, not here.
type SetSellAmount struct{ Value string }

// SetBuyAmount stores the computed receive amount. Only the quote
// synchronization process writes it.
type SetBuyAmount struct{ Value string }

// SetSellSymbolInput and SetBuySymbolInput track picker search text.
type SetSellSymbolInput struct{ Value string }
type SetBuySymbolInput struct{ Value string }

// SetFetchingQuote toggles the quote in-flight flag.
type SetFetchingQuote struct{ Fetching bool }

// SetQuoteResponse stores the latest accepted quote, or clears it with nil.
type SetQuoteResponse struct{ Quote *jupiter.Quote }

// SetIsSwapping toggles the submission in-flight flag.
type SetIsSwapping struct{ Swapping bool }

// SetTransactionReceipt stores or clears the completed-transaction signature.
type SetTransactionReceipt struct{ Receipt string }

// SetNativeBalance and SetTokenAccounts store balance snapshots verbatim.
type SetNativeBalance struct{ Balance *chain.Balance }
type SetTokenAccounts struct{ Accounts []chain.TokenAccount }

// Reset clears amounts and in-flight state but keeps the token selection and
// the last receipt.
type Reset struct{}

func (SetSellToken) isEvent()          {}
func (SetBuyToken) isEvent()           {}
func (ReverseTradeDirection) isEvent() {}
func (SetSellAmount) isEvent()         {}
func (SetBuyAmount) isEvent()          {}
func (SetSellSymbolInput) isEvent()    {}
func (SetBuySymbolInput) isEvent()     {}
func (SetFetchingQuote) isEvent()      {}
func (SetQuoteResponse) isEvent()      {}
func (SetIsSwapping) isEvent()         {}
func (SetTransactionReceipt) isEvent() {}
func (SetNativeBalance) isEvent()      {}
func (SetTokenAccounts) isEvent()      {}
func (Reset) isEvent()                 {}

// InitialState returns a fresh trade with the default SOL/USDC pair.
func InitialState() State {
	sol, _ := token.FindByAddress(token.WrappedSOL)
	usdc, _ := token.FindByAddress(token.USDCMint)

	return State{
		SellToken:       sol,
		BuyToken:        usdc,
		SellSymbolInput: sol.Symbol,
		BuySymbolInput:  usdc.Symbol,
	}
}
