package chain

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// SolDecimals is the fixed precision of the chain's native asset.
const SolDecimals = 9

// Balance is a point-in-time balance snapshot in both raw and UI units.
// Snapshots are display/validation data and may be stale.
type Balance struct {
	Amount         string  `json:"amount"`
	Decimals       uint8   `json:"decimals"`
	UIAmount       float64 `json:"uiAmount"`
	UIAmountString string  `json:"uiAmountString"`
}

// TokenAccount is one owned SPL token account with its parsed balance.
type TokenAccount struct {
	Pubkey  solana.PublicKey `json:"pubkey"`
	Mint    string           `json:"mint"`
	Balance Balance          `json:"balance"`
}

// SolanaClient wraps the RPC node for the read-only balance queries.
type SolanaClient struct {
	rpc        *rpc.Client
	commitment rpc.CommitmentType
	logger     *logrus.Logger
}

// NewSolanaClient connects a balance client to the given RPC endpoint.
func NewSolanaClient(rpcURL, commitment string, logger *logrus.Logger) *SolanaClient {
	if logger == nil {
		logger = logrus.New()
	}

	return &SolanaClient{
		rpc:        rpc.New(rpcURL),
		commitment: parseCommitment(commitment),
		logger:     logger,
	}
}

// NativeBalance returns the owner's SOL balance.
func (c *SolanaClient) NativeBalance(ctx context.Context, owner solana.PublicKey) (*Balance, error) {
	balance, err := c.rpc.GetBalance(ctx, owner, c.commitment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get native balance")
	}

	return lamportsToBalance(balance.Value, SolDecimals), nil
}

// parsedTokenAccount matches the jsonParsed account layout returned for
// spl-token accounts.
type parsedTokenAccount struct {
	Parsed struct {
		Info struct {
			Mint        string `json:"mint"`
			TokenAmount struct {
				Amount         string  `json:"amount"`
				Decimals       uint8   `json:"decimals"`
				UIAmount       float64 `json:"uiAmount"`
				UIAmountString string  `json:"uiAmountString"`
			} `json:"tokenAmount"`
		} `json:"info"`
	} `json:"parsed"`
}

// TokenAccounts returns all token accounts owned by owner under the SPL token
// program, with parsed balances.
func (c *SolanaClient) TokenAccounts(ctx context.Context, owner solana.PublicKey) ([]TokenAccount, error) {
	programID := solana.TokenProgramID

	result, err := c.rpc.GetTokenAccountsByOwner(
		ctx,
		owner,
		&rpc.GetTokenAccountsConfig{ProgramId: &programID},
		&rpc.GetTokenAccountsOpts{
			Commitment: c.commitment,
			Encoding:   solana.EncodingJSONParsed,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token accounts by owner")
	}

	accounts := make([]TokenAccount, 0, len(result.Value))
	for _, acc := range result.Value {
		raw := acc.Account.Data.GetRawJSON()

		var parsed parsedTokenAccount
		if err := json.Unmarshal(raw, &parsed); err != nil {
			c.logger.WithError(err).WithField("account", acc.Pubkey.String()).
				Warn("skipping unparseable token account")
			continue
		}

		accounts = append(accounts, TokenAccount{
			Pubkey: acc.Pubkey,
			Mint:   parsed.Parsed.Info.Mint,
			Balance: Balance{
				Amount:         parsed.Parsed.Info.TokenAmount.Amount,
				Decimals:       parsed.Parsed.Info.TokenAmount.Decimals,
				UIAmount:       parsed.Parsed.Info.TokenAmount.UIAmount,
				UIAmountString: parsed.Parsed.Info.TokenAmount.UIAmountString,
			},
		})
	}

	return accounts, nil
}

// FindByMint returns the balance of the account holding the given mint.
// Absence of a matching account is a valid "zero or no balance" outcome,
// not a failure.
func FindByMint(accounts []TokenAccount, mint string) (*Balance, bool) {
	for _, acc := range accounts {
		if acc.Mint == mint {
			b := acc.Balance
			return &b, true
		}
	}
	return nil, false
}

// lamportsToBalance converts a raw base-unit amount to a UI snapshot.
func lamportsToBalance(lamports uint64, decimals uint8) *Balance {
	raw := strconv.FormatUint(lamports, 10)
	ui := decimal.NewFromUint64(lamports).Shift(-int32(decimals))
	uiFloat, _ := ui.Float64()

	return &Balance{
		Amount:         raw,
		Decimals:       decimals,
		UIAmount:       uiFloat,
		UIAmountString: ui.String(),
	}
}

func parseCommitment(commitment string) rpc.CommitmentType {
	switch strings.ToLower(commitment) {
	case "finalized":
		return rpc.CommitmentFinalized
	case "confirmed":
		return rpc.CommitmentConfirmed
	case "processed":
		return rpc.CommitmentProcessed
	default:
		return rpc.CommitmentConfirmed
	}
}
