// Package oracle quotes Uniswap V2 pairs by reading pair storage directly and
// exposes a loaded pair as a depth.Oracle.
package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// contract UniswapV2Pair is IUniswapV2Pair, UniswapV2ERC20 {
//     ...
//     address public factory;             // slot 5
//     address public token0;              // slot 6
//     address public token1;              // slot 7
//
//     uint112 private reserve0;           // slot 8, accessible via getReserves
//     uint112 private reserve1;           // slot 8
//     uint32  private blockTimestampLast; // slot 8
const (
	slotToken0   = 6
	slotToken1   = 7
	slotReserves = 8
)

// Reader loads pair snapshots over JSON-RPC.
type Reader struct {
	logger *slog.Logger
	client *ethclient.Client
}

// NewReader returns a Reader using client for all storage reads.
func NewReader(logger *slog.Logger, client *ethclient.Client) *Reader {
	return &Reader{logger: logger, client: client}
}

// LoadPool reads tokens and reserves of pool at the latest block.
func (r *Reader) LoadPool(ctx context.Context, pool common.Address) (*Pool, error) {
	bn, err := r.client.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("block number: %w", err)
	}
	blockNum := new(big.Int).SetUint64(bn)

	b0, err := r.readSlot(ctx, pool, blockNum, slotToken0)
	if err != nil {
		return nil, err
	}
	b1, err := r.readSlot(ctx, pool, blockNum, slotToken1)
	if err != nil {
		return nil, err
	}
	// reserves (uint112 | uint112 | uint32) are packed into a single 32‑byte slot
	br, err := r.readSlot(ctx, pool, blockNum, slotReserves)
	if err != nil {
		return nil, err
	}
	reserve0, reserve1 := parseReserves(br)

	p := &Pool{
		Address:  pool,
		Block:    bn,
		Token0:   common.BytesToAddress(b0),
		Token1:   common.BytesToAddress(b1),
		Reserve0: reserve0,
		Reserve1: reserve1,
	}
	r.logger.Debug("pool loaded", "pool", pool.Hex(), "block", bn,
		"token0", p.Token0.Hex(), "token1", p.Token1.Hex(),
		"reserve0", reserve0.String(), "reserve1", reserve1.String())
	return p, nil
}

func (r *Reader) readSlot(ctx context.Context, pool common.Address, blockNum *big.Int, slot uint64) ([]byte, error) {
	key := common.BigToHash(new(big.Int).SetUint64(slot))
	b, err := r.client.StorageAt(ctx, pool, key, blockNum)
	if err != nil {
		return nil, fmt.Errorf("storageAt slot %d (pool %s, block %s): %w",
			slot, pool.Hex(), blockNum.String(), err)
	}
	return b, nil
}

// parseReserves unpacks two uint112 reserves from the 32‑byte storage word
// used by Uniswap V2 pairs. The layout is:
//
//	[ 32 bits timestamp | 112 bits reserve1 | 112 bits reserve0 ]
//
// Values are treated as big‑endian within the 256‑bit word.
func parseReserves(b []byte) (reserve0, reserve1 *big.Int) {
	v := new(big.Int).SetBytes(b)
	one := big.NewInt(1)
	mask112 := new(big.Int).Sub(new(big.Int).Lsh(one, 112), one)

	reserve0 = new(big.Int).And(v, mask112)
	tmp := new(big.Int).Rsh(v, 112)
	reserve1 = new(big.Int).And(tmp, mask112)
	return
}
