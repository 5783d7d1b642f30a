package trade

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hzhu/sol-swap/pkg/jupiter"
	"github.com/hzhu/sol-swap/pkg/token"
)

func mustToken(t *testing.T, symbol string) token.Token {
	t.Helper()
	tok, err := token.Find(symbol)
	require.NoError(t, err)
	return tok
}

func TestInitialState(t *testing.T) {
	s := InitialState()

	require.Equal(t, "SOL", s.SellToken.Symbol)
	require.Equal(t, "USDC", s.BuyToken.Symbol)
	require.Equal(t, "SOL", s.SellSymbolInput)
	require.Equal(t, "USDC", s.BuySymbolInput)
	require.Empty(t, s.SellAmount)
	require.Empty(t, s.BuyAmount)
	require.Nil(t, s.QuoteResponse)
}

func TestSetSellTokenReplacesToken(t *testing.T) {
	s := InitialState()
	bonk := mustToken(t, "Bonk")

	next := reduce(s, SetSellToken{Token: bonk})

	require.Equal(t, bonk.Address, next.SellToken.Address)
	require.Equal(t, "Bonk", next.SellSymbolInput)
	require.Equal(t, "USDC", next.BuyToken.Symbol)
}

func TestSetSellTokenSameTokenIsNoop(t *testing.T) {
	s := InitialState()
	s.SellAmount = "1"

	next := reduce(s, SetSellToken{Token: s.SellToken})

	require.Equal(t, s, next)
}

func TestSetSellTokenCollisionReverses(t *testing.T) {
	s := InitialState()
	s.SellAmount = "2"
	s.BuyAmount = "300"

	// Selecting USDC as the sell token while USDC is the buy token must not
	// produce a same-token trade; the whole direction flips.
	next := reduce(s, SetSellToken{Token: s.BuyToken})

	require.Equal(t, "USDC", next.SellToken.Symbol)
	require.Equal(t, "SOL", next.BuyToken.Symbol)
	require.Equal(t, "USDC", next.SellSymbolInput)
	require.Equal(t, "SOL", next.BuySymbolInput)
	require.Equal(t, "300", next.SellAmount)
	require.Empty(t, next.BuyAmount)
	require.True(t, next.FetchingQuote)
	require.NotEqual(t, next.SellToken.Address, next.BuyToken.Address)
}

func TestSetBuyTokenCollisionReverses(t *testing.T) {
	s := InitialState()
	s.SellAmount = "2"
	s.BuyAmount = "300"

	next := reduce(s, SetBuyToken{Token: s.SellToken})

	require.Equal(t, "USDC", next.SellToken.Symbol)
	require.Equal(t, "SOL", next.BuyToken.Symbol)
	require.Equal(t, "300", next.SellAmount)
	require.Empty(t, next.BuyAmount)
	require.NotEqual(t, next.SellToken.Address, next.BuyToken.Address)
}

func TestReverseTradeDirection(t *testing.T) {
	s := InitialState()
	s.SellAmount = "1"
	s.BuyAmount = "150"

	next := reduce(s, ReverseTradeDirection{})

	require.Equal(t, "USDC", next.SellToken.Symbol)
	require.Equal(t, "SOL", next.BuyToken.Symbol)
	require.Equal(t, "150", next.SellAmount)
	require.Empty(t, next.BuyAmount)
	require.True(t, next.FetchingQuote)
}

func TestReverseWithEmptyBuyAmount(t *testing.T) {
	s := InitialState()
	s.SellAmount = "1"

	next := reduce(s, ReverseTradeDirection{})

	require.Empty(t, next.SellAmount)
	require.False(t, next.FetchingQuote)
}

func TestCollisionEqualsExplicitReversal(t *testing.T) {
	s := InitialState()
	s.SellAmount = "2"
	s.BuyAmount = "300"

	viaCollision := reduce(s, SetSellToken{Token: s.BuyToken})
	viaReversal := reduce(s, ReverseTradeDirection{})

	require.Equal(t, viaReversal, viaCollision)

	viaBuyCollision := reduce(s, SetBuyToken{Token: s.SellToken})
	require.Equal(t, viaReversal, viaBuyCollision)
}

func TestReverseTwiceRestoresPair(t *testing.T) {
	s := InitialState()

	next := reduce(reduce(s, ReverseTradeDirection{}), ReverseTradeDirection{})

	require.Equal(t, s.SellToken, next.SellToken)
	require.Equal(t, s.BuyToken, next.BuyToken)
}

func TestResetKeepsTokensAndReceipt(t *testing.T) {
	s := InitialState()
	s.SellAmount = "1"
	s.BuyAmount = "150"
	s.IsSwapping = true
	s.QuoteResponse = &jupiter.Quote{InAmount: "1000000000"}
	s.TransactionReceipt = "signature"

	next := reduce(s, Reset{})

	require.Empty(t, next.SellAmount)
	require.Empty(t, next.BuyAmount)
	require.False(t, next.IsSwapping)
	require.Nil(t, next.QuoteResponse)
	require.Equal(t, "signature", next.TransactionReceipt)
	require.Equal(t, s.SellToken, next.SellToken)
	require.Equal(t, s.BuyToken, next.BuyToken)
}

func TestResetIsIdempotent(t *testing.T) {
	s := InitialState()
	s.SellAmount = "1"
	s.QuoteResponse = &jupiter.Quote{}
	s.TransactionReceipt = "signature"

	once := reduce(s, Reset{})
	twice := reduce(once, Reset{})

	require.Equal(t, once, twice)
}

func TestClearReceipt(t *testing.T) {
	s := InitialState()
	s.TransactionReceipt = "signature"

	next := reduce(s, SetTransactionReceipt{Receipt: ""})

	require.Empty(t, next.TransactionReceipt)
}

func TestReduceIsPure(t *testing.T) {
	s := InitialState()
	s.SellAmount = "1"

	_ = reduce(s, SetSellAmount{Value: "2"})

	require.Equal(t, "1", s.SellAmount)
}
