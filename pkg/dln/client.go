package dln

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the public DLN order API.
	DefaultBaseURL = "https://api.dln.trade/v1.0"
	// DefaultStatsBaseURL is the DLN statistics API used for order lookups.
	DefaultStatsBaseURL = "https://stats-api.dln.trade"
)

// Cross-chain identifiers used by the bridge.
const (
	PolygonChainID = 137
	SolanaChainID  = 7565164

	// NativeSOLAddress is the placeholder the order API uses for native SOL,
	// which is not an SPL token.
	NativeSOLAddress = "11111111111111111111111111111111"

	// PolygonUSDCAddress is the bridge's default source asset.
	PolygonUSDCAddress  = "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"
	PolygonUSDCDecimals = 6
)

// Client talks to the DLN cross-chain order APIs.
type Client struct {
	baseURL      string
	statsBaseURL string
	http         *http.Client
	logger       *logrus.Logger
}

// NewClient creates a bridge order client. Empty URLs select the public
// endpoints.
func NewClient(baseURL, statsBaseURL string, logger *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if statsBaseURL == "" {
		statsBaseURL = DefaultStatsBaseURL
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Client{
		baseURL:      baseURL,
		statsBaseURL: statsBaseURL,
		http:         &http.Client{},
		logger:       logger,
	}
}

// QuoteParams identify a cross-chain order quote request.
type QuoteParams struct {
	SrcChainID            int
	SrcChainTokenIn       string
	SrcChainTokenInAmount string // smallest units
	DstChainID            int
	DstChainTokenOut      string
}

// TokenAmount is an asset amount with its metadata as the order API reports it.
type TokenAmount struct {
	Address           string  `json:"address"`
	ChainID           int     `json:"chainId"`
	Decimals          uint8   `json:"decimals"`
	Name              string  `json:"name"`
	Symbol            string  `json:"symbol"`
	Amount            string  `json:"amount"`
	RecommendedAmount string  `json:"recommendedAmount,omitempty"`
	ApproximateUsd    float64 `json:"approximateUsdValue,omitempty"`
}

// Estimation is the priced two-sided breakdown of a bridge order.
type Estimation struct {
	SrcChainTokenIn  TokenAmount `json:"srcChainTokenIn"`
	DstChainTokenOut TokenAmount `json:"dstChainTokenOut"`
}

// Quote is the response of the bridge quote endpoint.
type Quote struct {
	Estimation Estimation `json:"estimation"`
}

// OrderTx is the signable order-creation transaction payload.
type OrderTx struct {
	To    string `json:"to"`
	Data  string `json:"data"`
	Value string `json:"value"`
}

// CreateTxResponse is the response of the create-transaction endpoint.
type CreateTxResponse struct {
	Estimation Estimation `json:"estimation"`
	Tx         OrderTx    `json:"tx"`
}

// GetQuote fetches a bridge quote for the given parameters.
func (c *Client) GetQuote(ctx context.Context, params QuoteParams) (*Quote, error) {
	q := url.Values{}
	q.Set("srcChainId", strconv.Itoa(params.SrcChainID))
	q.Set("srcChainTokenIn", params.SrcChainTokenIn)
	q.Set("srcChainTokenInAmount", params.SrcChainTokenInAmount)
	q.Set("dstChainId", strconv.Itoa(params.DstChainID))
	q.Set("dstChainTokenOut", params.DstChainTokenOut)
	q.Set("prependOperatingExpenses", "true")
	q.Set("affiliateFeePercent", "0.1")

	endpoint := fmt.Sprintf("%s/dln/order/quote?%s", c.baseURL, q.Encode())

	var quote Quote
	if err := c.getJSON(ctx, endpoint, &quote); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"in":          quote.Estimation.SrcChainTokenIn.Amount,
		"out":         quote.Estimation.DstChainTokenOut.Amount,
		"recommended": quote.Estimation.DstChainTokenOut.RecommendedAmount,
	}).Debug("bridge quote received")

	return &quote, nil
}

// CreateTxParams identify an order-creation transaction request. The
// recommended destination amount comes from a prior quote.
type CreateTxParams struct {
	QuoteParams
	DstChainTokenOutAmount        string
	DstChainTokenOutRecipient     string
	SrcChainOrderAuthorityAddress string
	DstChainOrderAuthorityAddress string
}

// CreateOrderTx requests the order-creation transaction for signing on the
// source chain.
func (c *Client) CreateOrderTx(ctx context.Context, params CreateTxParams) (*CreateTxResponse, error) {
	q := url.Values{}
	q.Set("srcChainId", strconv.Itoa(params.SrcChainID))
	q.Set("srcChainTokenIn", params.SrcChainTokenIn)
	q.Set("srcChainTokenInAmount", params.SrcChainTokenInAmount)
	q.Set("dstChainId", strconv.Itoa(params.DstChainID))
	q.Set("dstChainTokenOut", params.DstChainTokenOut)
	q.Set("dstChainTokenOutAmount", params.DstChainTokenOutAmount)
	q.Set("dstChainTokenOutRecipient", params.DstChainTokenOutRecipient)
	q.Set("srcChainOrderAuthorityAddress", params.SrcChainOrderAuthorityAddress)
	q.Set("dstChainOrderAuthorityAddress", params.DstChainOrderAuthorityAddress)

	endpoint := fmt.Sprintf("%s/dln/order/create-tx?%s", c.baseURL, q.Encode())

	var resp CreateTxResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	if resp.Tx.To == "" {
		return nil, errors.New("order API returned no transaction payload")
	}

	return &resp, nil
}

type stringValue struct {
	StringValue string `json:"stringValue"`
}

type orderIDsResponse struct {
	OrderIDs []stringValue `json:"orderIds"`
}

// OrderIDsByTxHash resolves the order IDs created by a source-chain
// transaction.
func (c *Client) OrderIDsByTxHash(ctx context.Context, txHash string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/api/Transaction/%s/orderIds", c.statsBaseURL, txHash)

	var resp orderIDsResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.OrderIDs))
	for _, id := range resp.OrderIDs {
		ids = append(ids, id.StringValue)
	}

	return ids, nil
}

// OfferWithMetadata is one side of an order as the stats API reports it.
type OfferWithMetadata struct {
	Amount   stringValue `json:"amount"`
	Symbol   string      `json:"symbol"`
	LogoURI  string      `json:"logoURI"`
	Metadata struct {
		Decimals uint8 `json:"decimals"`
	} `json:"metadata"`
}

type eventMetadata struct {
	TransactionHash stringValue `json:"transactionHash"`
}

// OrderStatus is the lifecycle snapshot of one bridge order.
type OrderStatus struct {
	State                     string            `json:"state"`
	GiveOfferWithMetadata     OfferWithMetadata `json:"giveOfferWithMetadata"`
	TakeOfferWithMetadata     OfferWithMetadata `json:"takeOfferWithMetadata"`
	CreatedSrcEventMetadata   *eventMetadata    `json:"createdSrcEventMetadata"`
	FulfilledDstEventMetadata *eventMetadata    `json:"fulfilledDstEventMetadata"`
}

// Completed reports whether the order has been fulfilled on the destination
// chain.
func (s *OrderStatus) Completed() bool {
	switch s.State {
	case "Fulfilled", "SentUnlock", "ClaimedUnlock":
		return true
	}
	return false
}

// Cancelled reports whether the order reached a terminal cancelled state.
func (s *OrderStatus) Cancelled() bool {
	switch s.State {
	case "OrderCancelled", "SentOrderCancel", "ClaimedOrderCancel":
		return true
	}
	return false
}

// CreateTxHash returns the source-chain creation transaction hash, if known.
func (s *OrderStatus) CreateTxHash() string {
	if s.CreatedSrcEventMetadata == nil {
		return ""
	}
	return s.CreatedSrcEventMetadata.TransactionHash.StringValue
}

// FulfillTxHash returns the destination-chain fulfillment hash, if known.
func (s *OrderStatus) FulfillTxHash() string {
	if s.FulfilledDstEventMetadata == nil {
		return ""
	}
	return s.FulfilledDstEventMetadata.TransactionHash.StringValue
}

// GetOrderStatus fetches the current status of an order.
func (c *Client) GetOrderStatus(ctx context.Context, orderID string) (*OrderStatus, error) {
	endpoint := fmt.Sprintf("%s/api/Orders/%s", c.statsBaseURL, orderID)

	var status OrderStatus
	if err := c.getJSON(ctx, endpoint, &status); err != nil {
		return nil, err
	}

	return &status, nil
}

// getJSON performs a GET and decodes the JSON body, surfacing the API's own
// message field on non-200 responses.
func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorResp struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errorResp); decodeErr == nil && errorResp.Message != "" {
			return errors.Errorf("API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return errors.Errorf("API returned status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}

	return nil
}
