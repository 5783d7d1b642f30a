package chain

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ERC20 balanceOf function ABI
const erc20BalanceOfABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"type":"function"}]`

// EVMClient reads ERC-20 balances on the bridge's source chain.
type EVMClient struct {
	client *ethclient.Client
	abi    abi.ABI
}

// NewEVMClient connects to an EVM RPC endpoint.
func NewEVMClient(rpcURL string) (*EVMClient, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RPC endpoint")
	}

	parsed, err := abi.JSON(strings.NewReader(erc20BalanceOfABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse ERC20 ABI")
	}

	return &EVMClient{client: client, abi: parsed}, nil
}

// TokenBalance reads the owner's ERC-20 token balance and formats it with the
// given decimal precision.
func (c *EVMClient) TokenBalance(ctx context.Context, tokenContract, owner string, decimals uint8) (*Balance, error) {
	if !common.IsHexAddress(tokenContract) {
		return nil, errors.Errorf("invalid token contract address: %s", tokenContract)
	}
	if !common.IsHexAddress(owner) {
		return nil, errors.Errorf("invalid owner address: %s", owner)
	}

	data, err := c.abi.Pack("balanceOf", common.HexToAddress(owner))
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack balanceOf call")
	}

	contract := common.HexToAddress(tokenContract)
	raw, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "balanceOf call failed")
	}

	out, err := c.abi.Unpack("balanceOf", raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unpack balanceOf result")
	}

	amount, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.New("unexpected balanceOf result type")
	}

	ui := decimal.NewFromBigInt(amount, -int32(decimals))
	uiFloat, _ := ui.Float64()

	return &Balance{
		Amount:         amount.String(),
		Decimals:       decimals,
		UIAmount:       uiFloat,
		UIAmountString: ui.String(),
	}, nil
}

// Close releases the underlying RPC connection.
func (c *EVMClient) Close() {
	c.client.Close()
}
