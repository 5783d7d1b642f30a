package wallet

import (
	"context"
	"encoding/base64"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// Wallet is the signing capability injected into the trade controller. The
// absence of a wallet is a valid state (the caller prompts to configure one),
// not an exception.
type Wallet interface {
	// PublicKey returns the wallet's public key.
	PublicKey() solana.PublicKey

	// SignAndSendTransaction signs the transaction and submits it to the
	// network, returning the resulting signature.
	SignAndSendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// KeypairWallet signs with a local keypair and submits over RPC.
type KeypairWallet struct {
	rpc           *rpc.Client
	privateKey    solana.PrivateKey
	publicKey     solana.PublicKey
	commitment    rpc.CommitmentType
	skipPreflight bool
}

// NewKeypairWallet loads a solana-keygen JSON keypair file.
func NewKeypairWallet(rpcURL, keypairPath, commitment string) (*KeypairWallet, error) {
	if rpcURL == "" {
		return nil, errors.New("RPC URL not configured")
	}
	if keypairPath == "" {
		return nil, errors.New("keypair path not configured")
	}

	privateKey, err := solana.PrivateKeyFromSolanaKeygenFile(keypairPath)
	if err != nil {
		return nil, errors.Wrap(err, "invalid keypair file")
	}

	return newKeypairWallet(rpcURL, privateKey, commitment), nil
}

// NewKeypairWalletFromBase58 builds a wallet from a base58-encoded private key.
func NewKeypairWalletFromBase58(rpcURL, encoded, commitment string) (*KeypairWallet, error) {
	privateKey, err := solana.PrivateKeyFromBase58(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "invalid private key")
	}

	return newKeypairWallet(rpcURL, privateKey, commitment), nil
}

func newKeypairWallet(rpcURL string, privateKey solana.PrivateKey, commitment string) *KeypairWallet {
	return &KeypairWallet{
		rpc:        rpc.New(rpcURL),
		privateKey: privateKey,
		publicKey:  privateKey.PublicKey(),
		commitment: parseCommitment(commitment),
	}
}

// PublicKey returns the wallet's public key.
func (w *KeypairWallet) PublicKey() solana.PublicKey {
	return w.publicKey
}

// SignAndSendTransaction signs with the local key and submits the transaction.
func (w *KeypairWallet) SignAndSendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.publicKey) {
			return &w.privateKey
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to sign transaction")
	}

	opts := rpc.TransactionOpts{
		SkipPreflight:       w.skipPreflight,
		PreflightCommitment: w.commitment,
	}

	sig, err := w.rpc.SendTransactionWithOpts(ctx, tx, opts)
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to send transaction")
	}

	return sig, nil
}

// DecodeBase64Transaction decodes the base64 transaction payload returned by
// the swap-building endpoint.
func DecodeBase64Transaction(encoded string) (*solana.Transaction, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode base64 transaction")
	}

	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, errors.Wrap(err, "failed to deserialize transaction")
	}

	return tx, nil
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
