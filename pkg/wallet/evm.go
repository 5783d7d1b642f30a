package wallet

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

// EVMSigner signs and submits transactions on the bridge's source chain, such
// as the order-creation transaction returned by the bridge API.
type EVMSigner struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

// NewEVMSigner connects to the RPC endpoint and loads the hex private key.
func NewEVMSigner(rpcURL, privateKeyHex string) (*EVMSigner, error) {
	if rpcURL == "" {
		return nil, errors.New("EVM RPC URL not configured")
	}
	if privateKeyHex == "" {
		return nil, errors.New("EVM private key not configured")
	}

	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RPC endpoint")
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid private key")
	}

	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("failed to derive public key")
	}

	return &EVMSigner{
		client:     client,
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(*publicKey),
	}, nil
}

// Address returns the signer's address.
func (s *EVMSigner) Address() common.Address {
	return s.address
}

// SendTransaction signs and submits a transaction with the given call data,
// returning the transaction hash.
func (s *EVMSigner) SendTransaction(ctx context.Context, to string, value *big.Int, data []byte) (string, error) {
	if !common.IsHexAddress(to) {
		return "", errors.Errorf("invalid recipient address: %s", to)
	}
	toAddress := common.HexToAddress(to)

	nonce, err := s.client.PendingNonceAt(ctx, s.address)
	if err != nil {
		return "", errors.Wrap(err, "failed to get nonce")
	}

	gasPrice, err := s.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get gas price")
	}

	gasLimit, err := s.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  s.address,
		To:    &toAddress,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to estimate gas")
	}

	chainID, err := s.client.ChainID(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get chain id")
	}

	tx := types.NewTransaction(nonce, toAddress, value, gasLimit, gasPrice, data)

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(chainID), s.privateKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign transaction")
	}

	if err := s.client.SendTransaction(ctx, signedTx); err != nil {
		return "", errors.Wrap(err, "failed to send transaction")
	}

	return signedTx.Hash().Hex(), nil
}

// Close releases the underlying RPC connection.
func (s *EVMSigner) Close() {
	s.client.Close()
}
