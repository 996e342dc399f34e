package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/rpc"
)

const (
	// blockLatest is the block tag used for reads.
	blockLatest = "latest"
	// codeContractNotFound is the Starknet JSON-RPC error for a missing contract.
	codeContractNotFound = 20
)

// FunctionCall is the starknet_call request body.
type FunctionCall struct {
	ContractAddress    string   `json:"contract_address"`
	EntryPointSelector string   `json:"entry_point_selector"`
	Calldata           []string `json:"calldata"`
}

// Client wraps a go-ethereum RPC client speaking the Starknet JSON-RPC API.
type Client struct {
	rpcClient *rpc.Client

	mu         sync.RWMutex
	classCache map[string]bool
}

// NewClient dials the Starknet RPC endpoint.
func NewClient(ctx context.Context, rpcURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		rpcClient:  rpcClient,
		classCache: make(map[string]bool),
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// ChainID returns the chain id felt.
func (c *Client) ChainID(ctx context.Context) (string, error) {
	var id string
	if err := c.rpcClient.CallContext(ctx, &id, "starknet_chainId"); err != nil {
		return "", fmt.Errorf("starknet_chainId: %w", err)
	}
	return id, nil
}

// ContractExists reports whether a class is deployed at address. Positive
// answers are cached.
func (c *Client) ContractExists(ctx context.Context, address string) (bool, error) {
	c.mu.RLock()
	ok := c.classCache[address]
	c.mu.RUnlock()
	if ok {
		return true, nil
	}

	var class map[string]any
	err := c.rpcClient.CallContext(ctx, &class, "starknet_getClassAt", blockLatest, address)
	if err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeContractNotFound {
			return false, nil
		}
		return false, fmt.Errorf("starknet_getClassAt %s: %w", address, err)
	}

	c.mu.Lock()
	c.classCache[address] = true
	c.mu.Unlock()
	return true, nil
}

// Call performs a read-only contract call.
func (c *Client) Call(ctx context.Context, contract, entryPoint string, calldata []string) ([]string, error) {
	if calldata == nil {
		calldata = []string{}
	}
	req := FunctionCall{
		ContractAddress:    contract,
		EntryPointSelector: Selector(entryPoint),
		Calldata:           calldata,
	}
	var result []string
	if err := c.rpcClient.CallContext(ctx, &result, "starknet_call", req, blockLatest); err != nil {
		return nil, fmt.Errorf("call %s.%s: %w", contract, entryPoint, err)
	}
	return result, nil
}

// BalanceOf reads an ERC-20 balance.
func (c *Client) BalanceOf(ctx context.Context, token, owner string) (*big.Int, error) {
	result, err := c.Call(ctx, token, "balance_of", []string{owner})
	if err != nil {
		return nil, err
	}
	return decodeU256(result)
}

// Allowance reads an ERC-20 allowance.
func (c *Client) Allowance(ctx context.Context, token, owner, spender string) (*big.Int, error) {
	result, err := c.Call(ctx, token, "allowance", []string{owner, spender})
	if err != nil {
		return nil, err
	}
	return decodeU256(result)
}

// Decimals reads an ERC-20 decimals value.
func (c *Client) Decimals(ctx context.Context, token string) (uint8, error) {
	result, err := c.Call(ctx, token, "decimals", nil)
	if err != nil {
		return 0, err
	}
	if len(result) == 0 {
		return 0, fmt.Errorf("decimals %s: empty result", token)
	}
	v, err := ParseFelt(result[0])
	if err != nil {
		return 0, err
	}
	if v.BitLen() > 8 {
		return 0, fmt.Errorf("decimals %s: %s out of range", token, v)
	}
	return uint8(v.Uint64()), nil
}

func decodeU256(result []string) (*big.Int, error) {
	switch len(result) {
	case 1:
		return ParseFelt(result[0])
	case 2:
		return JoinU256(result[0], result[1])
	default:
		return nil, fmt.Errorf("unexpected u256 result length %d", len(result))
	}
}
