// Command depth prints how much of one token a Uniswap V2 pair absorbs before
// its price moves by the given slippage levels.
//
//	depth -pool 0x... -src 0x... -dst 0x... -slippage 0.01,0.02 -probe 1000000
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/joho/godotenv"

	"github.com/mud2monarch/liquidity-depth-cli/internal/eth"
	"github.com/mud2monarch/liquidity-depth-cli/internal/logging"
	"github.com/mud2monarch/liquidity-depth-cli/internal/oracle"
	"github.com/mud2monarch/liquidity-depth-cli/internal/service"
	"github.com/mud2monarch/liquidity-depth-cli/pkg/depth"
)

var errUsage = errors.New("usage: depth -pool ADDR -src ADDR -dst ADDR [-slippage 0.02] [-tolerance 0.0001] [-probe 1000000000000000000]")

type options struct {
	rpcURL    string
	pool      common.Address
	src       common.Address
	dst       common.Address
	levels    []float64
	tolerance float64
	probe     *uint256.Int
	timeout   time.Duration
	logLevel  string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	_ = godotenv.Load()

	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(opts.logLevel, "text")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := eth.Dial(ctx, opts.rpcURL, opts.timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to Ethereum node: %w", err)
	}
	defer client.Close()

	svc := service.NewDepthService(logger, oracle.NewReader(logger, client), opts.timeout)

	start := time.Now()
	report, err := svc.Depth(ctx, service.DepthRequest{
		Pool:      opts.pool,
		Src:       opts.src,
		Dst:       opts.dst,
		Levels:    opts.levels,
		Tolerance: opts.tolerance,
		Probe:     opts.probe,
	})
	if err != nil {
		return err
	}
	return printReport(stdout, report, opts.levels, time.Since(start))
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("depth", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	rpcURL := fs.String("rpc", os.Getenv("ETH_RPC_URL"), "Ethereum JSON-RPC endpoint (default $ETH_RPC_URL)")
	pool := fs.String("pool", "", "Uniswap V2 pair address")
	src := fs.String("src", "", "token sold into the pair")
	dst := fs.String("dst", "", "token bought from the pair")
	levels := fs.String("slippage", "0.02", "comma separated slippage levels, e.g. 0.01,0.02")
	tolerance := fs.Float64("tolerance", 0.0001, "accepted absolute deviation from each level")
	probe := fs.String("probe", depth.DefaultInitialProbe().Dec(), "first bracketing amount in src base units")
	timeout := fs.Duration("timeout", 15*time.Second, "dial and search timeout")
	logLevel := fs.String("log-level", "warn", "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if *rpcURL == "" {
		return nil, fmt.Errorf("%w: -rpc or ETH_RPC_URL is required", errUsage)
	}

	o := &options{
		rpcURL:    *rpcURL,
		tolerance: *tolerance,
		timeout:   *timeout,
		logLevel:  *logLevel,
	}

	for _, a := range []struct {
		name string
		raw  string
		dst  *common.Address
	}{
		{"pool", *pool, &o.pool},
		{"src", *src, &o.src},
		{"dst", *dst, &o.dst},
	} {
		if !common.IsHexAddress(a.raw) {
			return nil, fmt.Errorf("%w: invalid -%s %q", errUsage, a.name, a.raw)
		}
		*a.dst = common.HexToAddress(a.raw)
	}

	for _, raw := range strings.Split(*levels, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid -slippage %q", errUsage, raw)
		}
		o.levels = append(o.levels, v)
	}

	p, err := uint256.FromDecimal(*probe)
	if err != nil || p.IsZero() {
		return nil, fmt.Errorf("%w: invalid -probe %q", errUsage, *probe)
	}
	o.probe = p

	return o, nil
}

func printReport(w io.Writer, report *service.DepthReport, levels []float64, elapsed time.Duration) error {
	if _, err := fmt.Fprintf(w, "pool %s at block %d: %s -> %s\n", report.Pool.Hex(), report.Block, report.Src.Hex(), report.Dst.Hex()); err != nil {
		return err
	}
	if len(report.Results) > 0 {
		if _, err := fmt.Fprintf(w, "spot %s\n", report.Results[0].Spot.Rat().FloatString(18)); err != nil {
			return err
		}
	}
	for i, res := range report.Results {
		_, err := fmt.Fprintf(w, "%6.2f%%  in %s  out %s  realized %.6f  (%d bracket + %d bisect steps)\n",
			levels[i]*100, res.AmountIn.Dec(), res.AmountOut.Dec(), res.Slippage.Float64(), res.BracketSteps, res.BisectSteps)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "done in %s\n", elapsed.Round(time.Millisecond))
	return err
}
