package trade

import (
	"context"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/hzhu/sol-swap/pkg/chain"
	"github.com/hzhu/sol-swap/pkg/jupiter"
	"github.com/hzhu/sol-swap/pkg/wallet"
)

const (
	// DefaultDebounceWait is the stabilization window for sell-amount input.
	DefaultDebounceWait = 500 * time.Millisecond
	// DefaultSlippageBps is the slippage tolerance sent with quote requests.
	DefaultSlippageBps = 25
)

// QuoteService is the aggregator capability the controller drives.
type QuoteService interface {
	GetQuote(ctx context.Context, params jupiter.QuoteParams) (*jupiter.Quote, error)
	BuildSwap(ctx context.Context, quote *jupiter.Quote, userPublicKey string, wrapAndUnwrapSol bool) (string, error)
}

// BalanceReader is the RPC capability used for the read-only balance lookups.
type BalanceReader interface {
	NativeBalance(ctx context.Context, owner solana.PublicKey) (*chain.Balance, error)
	TokenAccounts(ctx context.Context, owner solana.PublicKey) ([]chain.TokenAccount, error)
}

// Config wires the controller's external capabilities. Wallet and Balances
// may be nil: a missing wallet is a valid state that only disables submission
// and balance refresh.
type Config struct {
	Quotes       QuoteService
	Wallet       wallet.Wallet
	Balances     BalanceReader
	SlippageBps  int
	DebounceWait time.Duration
	Logger       *logrus.Logger
}

// Controller owns the trade state for the lifetime of one session. All
// mutations flow through Dispatch in dispatch order; observers subscribe to
// state changes and react explicitly.
type Controller struct {
	cfg    Config
	logger *logrus.Logger

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
	ctx     context.Context

	// notifyMu serializes reduce-and-notify pairs so observers see state
	// changes in the order they were applied.
	notifyMu sync.Mutex

	debouncer *Debouncer[string]
}

// NewController creates a controller in the initial state. Call Start before
// dispatching input.
func NewController(cfg Config) *Controller {
	if cfg.SlippageBps == 0 {
		cfg.SlippageBps = DefaultSlippageBps
	}
	if cfg.DebounceWait == 0 {
		cfg.DebounceWait = DefaultDebounceWait
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	c := &Controller{
		cfg:    cfg,
		logger: cfg.Logger,
		state:  InitialState(),
		subs:   make(map[int]func(State)),
		ctx:    context.Background(),
	}

	c.debouncer = NewDebouncer(cfg.DebounceWait, c.onDebouncedSellAmount)

	return c
}

// Start begins background effects: the initial balance refresh runs when a
// wallet and balance reader are configured.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	if c.cfg.Wallet != nil && c.cfg.Balances != nil {
		go c.refreshBalances(ctx)
	}
}

// Stop cancels any pending debounced emission. In-flight quote requests are
// not aborted; their results are discarded by the staleness guard.
func (c *Controller) Stop() {
	c.debouncer.Stop()
}

// State returns a snapshot of the current trade state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers an observer invoked after every state change. The
// returned function unsubscribes it.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Dispatch applies one event through the reducer and notifies subscribers.
// Events are applied in dispatch order, and each notification completes
// before the next state change is applied. Observers must not dispatch.
func (c *Controller) Dispatch(ev Event) {
	c.notifyMu.Lock()

	c.mu.Lock()
	prev := c.state
	c.state = reduce(c.state, ev)
	next := c.state
	ctx := c.ctx

	observers := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(next)
	}

	c.notifyMu.Unlock()

	switch e := ev.(type) {
	case SetSellAmount:
		c.debouncer.Set(e.Value)
	case SetSellToken, SetBuyToken, ReverseTradeDirection:
		c.resyncQuote(prev, next)
	case SetTransactionReceipt:
		// A completed submission changes on-chain balances; refresh so the
		// displayed balance reflects the new state.
		if e.Receipt != "" && e.Receipt != prev.TransactionReceipt &&
			c.cfg.Wallet != nil && c.cfg.Balances != nil {
			go c.refreshBalances(ctx)
		}
	}
}

// SetSellAmountInput is the validated input boundary for the sell amount.
// Malformed numeric strings are rejected here and never reach the reducer.
// Clearing the input also clears the derived buy amount and quote.
func (c *Controller) SetSellAmountInput(value string) error {
	if !ValidAmountInput(value) {
		return errors.Errorf("invalid amount: %q", value)
	}

	c.Dispatch(SetSellAmount{Value: value})

	if value == "" {
		c.Dispatch(SetBuyAmount{Value: ""})
		c.Dispatch(SetQuoteResponse{Quote: nil})
	}

	return nil
}

// resyncQuote re-evaluates the quote synchronization after a token change or
// direction reversal. Any quote held in state was priced for the previous
// pair, so it is dropped along with the derived buy amount, and the current
// sell amount re-enters the debounce window so a fresh request can fire.
func (c *Controller) resyncQuote(prev, next State) {
	if prev.SellToken.Address == next.SellToken.Address &&
		prev.BuyToken.Address == next.BuyToken.Address {
		return
	}

	if next.QuoteResponse != nil {
		c.Dispatch(SetQuoteResponse{Quote: nil})
	}
	if next.BuyAmount != "" {
		c.Dispatch(SetBuyAmount{Value: ""})
	}

	if next.SellAmount != "" {
		c.debouncer.Set(next.SellAmount)
	} else if next.FetchingQuote {
		c.Dispatch(SetFetchingQuote{Fetching: false})
	}
}

// onDebouncedSellAmount runs once the sell amount has stabilized. It gates the
// quote request on the three synchronization conditions: a non-empty, non-zero
// amount; both tokens selected; and the debounced value still matching the
// current sell amount (the staleness guard).
func (c *Controller) onDebouncedSellAmount(debounced string) {
	s := c.State()

	if debounced == "" || isZeroAmount(debounced) {
		c.settleSkippedFetch(s)
		return
	}
	if s.SellToken.Address == "" || s.BuyToken.Address == "" {
		c.settleSkippedFetch(s)
		return
	}
	if s.SellAmount != debounced {
		// A newer value is pending in the debouncer; its emission settles
		// the fetching flag.
		return
	}

	smallest, ok := ToSmallestUnit(debounced, s.SellToken.Decimals)
	if !ok {
		// Fractional base units are not representable on-chain; skip the
		// request entirely.
		c.logger.WithField("amount", debounced).Debug("skipping quote for sub-unit amount")
		c.settleSkippedFetch(s)
		return
	}

	c.Dispatch(SetFetchingQuote{Fetching: true})

	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()

	go c.fetchQuote(ctx, debounced, smallest, s)
}

// settleSkippedFetch lowers the fetching flag when a debounced emission
// decides not to issue a request. A direction reversal raises the flag before
// the request exists; without this it would never clear.
func (c *Controller) settleSkippedFetch(s State) {
	if s.FetchingQuote {
		c.Dispatch(SetFetchingQuote{Fetching: false})
	}
}

// fetchQuote issues the quote request and feeds the result back through
// reducer events. Overlapping requests are not cancelled; a response whose
// requested amount no longer matches the current sell amount is discarded.
func (c *Controller) fetchQuote(ctx context.Context, requested, smallest string, s State) {
	quote, err := c.cfg.Quotes.GetQuote(ctx, jupiter.QuoteParams{
		InputMint:           s.SellToken.Address,
		OutputMint:          s.BuyToken.Address,
		Amount:              smallest,
		SlippageBps:         c.cfg.SlippageBps,
		OnlyDirectRoutes:    false,
		AsLegacyTransaction: false,
	})
	if err != nil {
		c.logger.WithError(err).Warn("quote request failed")
		c.Dispatch(SetFetchingQuote{Fetching: false})
		return
	}

	if c.State().SellAmount != requested {
		c.logger.WithField("amount", requested).Debug("discarding stale quote response")
		c.Dispatch(SetFetchingQuote{Fetching: false})
		return
	}

	buyAmount, err := FromSmallestUnit(quote.OutAmount, s.BuyToken.Decimals)
	if err != nil {
		c.logger.WithError(err).Warn("unparseable quote output amount")
		c.Dispatch(SetFetchingQuote{Fetching: false})
		return
	}

	c.Dispatch(SetQuoteResponse{Quote: quote})
	c.Dispatch(SetBuyAmount{Value: buyAmount})
	c.Dispatch(SetFetchingQuote{Fetching: false})
}

// refreshBalances fetches the native and token balance snapshots and stores
// them verbatim. Failures are logged; stale snapshots never block trading.
func (c *Controller) refreshBalances(ctx context.Context) {
	owner := c.cfg.Wallet.PublicKey()

	native, err := c.cfg.Balances.NativeBalance(ctx, owner)
	if err != nil {
		c.logger.WithError(err).Warn("failed to fetch native balance")
	} else {
		c.Dispatch(SetNativeBalance{Balance: native})
	}

	accounts, err := c.cfg.Balances.TokenAccounts(ctx, owner)
	if err != nil {
		c.logger.WithError(err).Warn("failed to fetch token accounts")
	} else {
		c.Dispatch(SetTokenAccounts{Accounts: accounts})
	}
}

// DisplayBalance returns the balance snapshot for the current sell token: the
// native balance when selling SOL, otherwise the matching SPL token account.
// Nil means no data yet; a missing token account is reported as a zero
// balance rather than nil.
func (c *Controller) DisplayBalance() *chain.Balance {
	s := c.State()
	return displayBalance(s)
}

func displayBalance(s State) *chain.Balance {
	if s.SellToken.IsNativeSOL() {
		return s.NativeBalance
	}

	if s.TokenAccounts == nil {
		return nil
	}

	if bal, ok := chain.FindByMint(s.TokenAccounts, s.SellToken.Address); ok {
		return bal
	}

	return &chain.Balance{
		Amount:         "0",
		Decimals:       s.SellToken.Decimals,
		UIAmount:       0,
		UIAmountString: "0",
	}
}

// InsufficientBalance reports whether the entered sell amount exceeds the
// displayed balance. With an amount entered but no balance data yet, it fails
// closed and reports insufficient.
func (c *Controller) InsufficientBalance() bool {
	s := c.State()

	if s.SellAmount == "" {
		return false
	}

	bal := displayBalance(s)
	if bal == nil {
		return true
	}

	// Prefer the quote's exact input amount; fall back to the raw entry
	// while no quote has arrived.
	entered := s.SellAmount
	if s.QuoteResponse != nil {
		human, err := FromSmallestUnit(s.QuoteResponse.InAmount, s.SellToken.Decimals)
		if err == nil {
			entered = human
		}
	}

	amount, err := decimal.NewFromString(entered)
	if err != nil {
		return true
	}

	available, err := decimal.NewFromString(bal.UIAmountString)
	if err != nil {
		return true
	}

	return amount.GreaterThan(available)
}

// CanSubmit reports whether a submission may start: a quote is present, no
// submission or quote fetch is in flight, a wallet is configured, and the
// balance covers the trade.
func (c *Controller) CanSubmit() bool {
	s := c.State()

	if s.QuoteResponse == nil || s.IsSwapping || s.FetchingQuote {
		return false
	}
	if c.cfg.Wallet == nil {
		return false
	}

	return !c.InsufficientBalance()
}

// Submit runs the submission flow: build the swap transaction from the
// current quote, have the wallet sign and send it, and store the receipt.
// Success or failure, the form resets; the receipt is the only record kept in
// state.
func (c *Controller) Submit(ctx context.Context) (string, error) {
	if !c.CanSubmit() {
		return "", errors.New("swap is not ready for submission")
	}

	s := c.State()
	quote := s.QuoteResponse

	c.Dispatch(SetIsSwapping{Swapping: true})
	defer c.Dispatch(Reset{})

	encoded, err := c.cfg.Quotes.BuildSwap(ctx, quote, c.cfg.Wallet.PublicKey().String(), true)
	if err != nil {
		c.logger.WithError(err).Error("failed to build swap transaction")
		return "", err
	}

	tx, err := wallet.DecodeBase64Transaction(encoded)
	if err != nil {
		c.logger.WithError(err).Error("failed to decode swap transaction")
		return "", err
	}

	sig, err := c.cfg.Wallet.SignAndSendTransaction(ctx, tx)
	if err != nil {
		c.logger.WithError(err).Error("failed to sign and send transaction")
		return "", err
	}

	receipt := sig.String()
	c.Dispatch(SetTransactionReceipt{Receipt: receipt})
	c.logger.WithField("signature", receipt).Info("transaction sent")

	return receipt, nil
}
