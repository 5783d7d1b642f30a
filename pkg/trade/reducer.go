package trade

// reduce is the pure transition function mapping (state, event) to the next
// state. No side effects, no I/O.
func reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case SetSellToken:
		if e.Token.Address == s.SellToken.Address {
			return s
		}
		// Selecting the current buy token would put the same token on both
		// sides; reverse the trade direction instead.
		if e.Token.Address == s.BuyToken.Address {
			return reverseDirection(s)
		}
		s.SellToken = e.Token
		s.SellSymbolInput = e.Token.Symbol
		return s

	case SetBuyToken:
		if e.Token.Address == s.BuyToken.Address {
			return s
		}
		if e.Token.Address == s.SellToken.Address {
			return reverseDirection(s)
		}
		s.BuyToken = e.Token
		s.BuySymbolInput = e.Token.Symbol
		return s

	case ReverseTradeDirection:
		return reverseDirection(s)

	case SetSellAmount:
		s.SellAmount = e.Value
		return s

	case SetBuyAmount:
		s.BuyAmount = e.Value
		return s

	case SetSellSymbolInput:
		s.SellSymbolInput = e.Value
		return s

	case SetBuySymbolInput:
		s.BuySymbolInput = e.Value
		return s

	case SetFetchingQuote:
		s.FetchingQuote = e.Fetching
		return s

	case SetQuoteResponse:
		s.QuoteResponse = e.Quote
		return s

	case SetIsSwapping:
		s.IsSwapping = e.Swapping
		return s

	case SetTransactionReceipt:
		s.TransactionReceipt = e.Receipt
		return s

	case SetNativeBalance:
		s.NativeBalance = e.Balance
		return s

	case SetTokenAccounts:
		s.TokenAccounts = e.Accounts
		return s

	case Reset:
		s.SellAmount = ""
		s.BuyAmount = ""
		s.IsSwapping = false
		s.QuoteResponse = nil
		// The receipt survives reset so the completion notice stays visible;
		// it is cleared by an explicit SetTransactionReceipt("").
		return s

	default:
		return s
	}
}

// reverseDirection swaps the sell and buy sides as one atomic transition: the
// current buy amount becomes the sell amount, the buy amount clears, and a
// fresh quote is required whenever the new sell amount is non-empty.
func reverseDirection(s State) State {
	next := s
	next.SellToken = s.BuyToken
	next.BuyToken = s.SellToken
	next.SellSymbolInput = s.BuyToken.Symbol
	next.BuySymbolInput = s.SellToken.Symbol
	next.SellAmount = s.BuyAmount
	next.BuyAmount = ""
	next.FetchingQuote = s.BuyAmount != ""
	return next
}
