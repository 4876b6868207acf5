// Package ethtest serves a fake "eth" JSON-RPC namespace in-process so
// storage-reading code can be tested through a real ethclient.Client.
package ethtest

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Fake answers eth_blockNumber and eth_getStorageAt from memory.
type Fake struct {
	BlockNumberValue uint64
	// Storage[address][positionHash] = 32-byte value
	Storage map[common.Address]map[common.Hash][]byte
	// Err, when set, fails every call.
	Err error
}

func (f *Fake) BlockNumber(ctx context.Context) (hexutil.Uint64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	return hexutil.Uint64(f.BlockNumberValue), nil
}

func (f *Fake) GetStorageAt(ctx context.Context, addr common.Address, position common.Hash, _ gethrpc.BlockNumberOrHash) (hexutil.Bytes, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if m, ok := f.Storage[addr]; ok {
		if v, ok2 := m[position]; ok2 {
			return hexutil.Bytes(v), nil
		}
	}
	// default empty 32 bytes
	return hexutil.Bytes(make([]byte, 32)), nil
}

// ErrUnavailable is a convenience failure for Fake.Err.
var ErrUnavailable = errors.New("node unavailable")

// NewClient registers f under the "eth" namespace and dials it in-process.
func NewClient(t *testing.T, f *Fake) *ethclient.Client {
	t.Helper()
	srv := gethrpc.NewServer()
	// Register under the standard "eth" namespace so methods map to eth_*
	if err := srv.RegisterName("eth", f); err != nil {
		t.Fatalf("register rpc service: %v", err)
	}
	c := gethrpc.DialInProc(srv)
	t.Cleanup(func() {
		c.Close()
		srv.Stop()
	})
	return ethclient.NewClient(c)
}

// NewPair returns a Fake holding one Uniswap V2 pair.
func NewPair(block uint64, pool, token0, token1 common.Address, r0, r1 *big.Int) *Fake {
	return &Fake{
		BlockNumberValue: block,
		Storage: map[common.Address]map[common.Hash][]byte{
			pool: {
				common.BigToHash(big.NewInt(6)): RightPadAddress(token0),
				common.BigToHash(big.NewInt(7)): RightPadAddress(token1),
				common.BigToHash(big.NewInt(8)): PackReserves(r0, r1, 0),
			},
		},
	}
}

// U256Bytes left-pads v to a 32-byte word.
func U256Bytes(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) > 32 {
		panic("value does not fit in 32 bytes")
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// PackReserves lays out reserves the way UniswapV2Pair stores slot 8.
func PackReserves(r0, r1 *big.Int, ts uint32) []byte {
	v := new(big.Int).SetUint64(uint64(ts))
	v.Lsh(v, 112)
	v.Or(v, r1)
	v.Lsh(v, 112)
	v.Or(v, r0)
	return U256Bytes(v)
}

// RightPadAddress returns addr as stored in a 32-byte slot.
func RightPadAddress(addr common.Address) []byte {
	// Address is right-aligned in 32 bytes when read from storage
	out := make([]byte, 32)
	copy(out[12:], addr.Bytes())
	return out
}
