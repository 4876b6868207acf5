package eth

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

// Dial connects to url, giving up after timeout.
func Dial(ctx context.Context, url string, timeout time.Duration) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return ethclient.DialContext(ctx, url)
}
