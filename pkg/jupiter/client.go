package jupiter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the public Jupiter v6 quote API.
const DefaultBaseURL = "https://quote-api.jup.ag/v6"

// Client talks to the Jupiter aggregator quote and swap endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

// NewClient creates an aggregator client. An empty baseURL selects the public
// endpoint. The HTTP client carries no timeout of its own; in-flight staleness
// is handled by the caller.
func NewClient(baseURL string, logger *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		logger:  logger,
	}
}

// QuoteParams are the query parameters of the quote endpoint. Parameter names
// on the wire must match the aggregator exactly.
type QuoteParams struct {
	InputMint           string
	OutputMint          string
	Amount              string // smallest units
	SlippageBps         int
	OnlyDirectRoutes    bool
	AsLegacyTransaction bool
}

// Quote is a price/route proposal for converting one token into another.
type Quote struct {
	InputMint            string      `json:"inputMint"`
	InAmount             string      `json:"inAmount"`
	OutputMint           string      `json:"outputMint"`
	OutAmount            string      `json:"outAmount"`
	OtherAmountThreshold string      `json:"otherAmountThreshold"`
	SwapMode             string      `json:"swapMode"`
	SlippageBps          int         `json:"slippageBps"`
	PriceImpactPct       string      `json:"priceImpactPct"`
	RoutePlan            []RouteStep `json:"routePlan"`
	ContextSlot          uint64      `json:"contextSlot"`
	TimeTaken            float64     `json:"timeTaken"`
}

// RouteStep is one hop of the quoted route.
type RouteStep struct {
	SwapInfo SwapInfo `json:"swapInfo"`
	Percent  int      `json:"percent"`
}

// SwapInfo describes the AMM leg of a route step.
type SwapInfo struct {
	AmmKey     string `json:"ammKey"`
	Label      string `json:"label"`
	InputMint  string `json:"inputMint"`
	OutputMint string `json:"outputMint"`
	InAmount   string `json:"inAmount"`
	OutAmount  string `json:"outAmount"`
	FeeAmount  string `json:"feeAmount"`
	FeeMint    string `json:"feeMint"`
}

// swapRequest is the body of the swap-building endpoint.
type swapRequest struct {
	QuoteResponse    *Quote `json:"quoteResponse"`
	UserPublicKey    string `json:"userPublicKey"`
	WrapAndUnwrapSol bool   `json:"wrapAndUnwrapSol"`
}

type swapResponse struct {
	SwapTransaction string `json:"swapTransaction"`
}

// GetQuote fetches a quote for the given parameters.
func (c *Client) GetQuote(ctx context.Context, params QuoteParams) (*Quote, error) {
	q := url.Values{}
	q.Set("inputMint", params.InputMint)
	q.Set("outputMint", params.OutputMint)
	q.Set("amount", params.Amount)
	q.Set("slippageBps", strconv.Itoa(params.SlippageBps))
	q.Set("onlyDirectRoutes", strconv.FormatBool(params.OnlyDirectRoutes))
	q.Set("asLegacyTransaction", strconv.FormatBool(params.AsLegacyTransaction))

	endpoint := fmt.Sprintf("%s/quote?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build quote request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "quote request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var quote Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, errors.Wrap(err, "failed to decode quote response")
	}

	c.logger.WithFields(logrus.Fields{
		"inputMint":  quote.InputMint,
		"outputMint": quote.OutputMint,
		"inAmount":   quote.InAmount,
		"outAmount":  quote.OutAmount,
	}).Debug("quote received")

	return &quote, nil
}

// BuildSwap posts the quote to the swap-building endpoint and returns the
// base64-encoded signable transaction payload.
func (c *Client) BuildSwap(ctx context.Context, quote *Quote, userPublicKey string, wrapAndUnwrapSol bool) (string, error) {
	body, err := json.Marshal(swapRequest{
		QuoteResponse:    quote,
		UserPublicKey:    userPublicKey,
		WrapAndUnwrapSol: wrapAndUnwrapSol,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal swap request")
	}

	endpoint := c.baseURL + "/swap"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to build swap request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "swap request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}

	var out swapResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Wrap(err, "failed to decode swap response")
	}

	if out.SwapTransaction == "" {
		return "", errors.New("empty swap transaction in response")
	}

	return out.SwapTransaction, nil
}

// apiError extracts the error message the aggregator returns in the response
// body, falling back to the raw body or status code when it cannot be parsed.
func apiError(resp *http.Response) error {
	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr == nil && len(bodyBytes) > 0 {
		var errorResp map[string]interface{}
		if jsonErr := json.Unmarshal(bodyBytes, &errorResp); jsonErr == nil {
			if message, ok := errorResp["error"].(string); ok {
				return errors.Errorf("API error (status %d): %s", resp.StatusCode, message)
			}
			if message, ok := errorResp["message"].(string); ok {
				return errors.Errorf("API error (status %d): %s", resp.StatusCode, message)
			}
		}
		return errors.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	return errors.Errorf("API returned status code %d", resp.StatusCode)
}
