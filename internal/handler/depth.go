package handler

import (
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/mud2monarch/liquidity-depth-cli/internal/service"
	"github.com/mud2monarch/liquidity-depth-cli/pkg/depth"
)

type DepthHandler struct {
	BaseHandler
	service   *service.DepthService
	tolerance float64
	probe     *uint256.Int
}

// NewDepthHandler builds the /depth handler. tolerance and probe are used
// when the request omits them.
func NewDepthHandler(logger *slog.Logger, svc *service.DepthService, tolerance float64, probe *uint256.Int) *DepthHandler {
	return &DepthHandler{
		BaseHandler: BaseHandler{
			logger: logger,
		},
		service:   svc,
		tolerance: tolerance,
		probe:     probe,
	}
}

type DepthRequest struct {
	Pool      string `query:"pool" json:"pool"`
	Src       string `query:"src" json:"src"`
	Dst       string `query:"dst" json:"dst"`
	Slippage  string `query:"slippage" json:"slippage"`
	Tolerance string `query:"tolerance" json:"tolerance"`
	Probe     string `query:"probe" json:"probe"`
}

type DepthLevel struct {
	Slippage     float64 `json:"slippage"`
	AmountIn     string  `json:"amount_in"`
	AmountOut    string  `json:"amount_out"`
	Realized     float64 `json:"realized"`
	BracketSteps int     `json:"bracket_steps"`
	BisectSteps  int     `json:"bisect_steps"`
}

type DepthResponse struct {
	Pool      string       `json:"pool"`
	Block     uint64       `json:"block"`
	Src       string       `json:"src"`
	Dst       string       `json:"dst"`
	Spot      string       `json:"spot"`
	Tolerance float64      `json:"tolerance"`
	Levels    []DepthLevel `json:"levels"`
}

func (h *DepthHandler) Handle() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req DepthRequest
		if err := c.Bind().Query(&req); err != nil {
			h.logger.Debug("failed to bind query parameters", "err", err)
			return ErrInvalidQueryParameters
		}
		if err := h.validateAddresses(req.Pool, req.Src, req.Dst); err != nil {
			return err
		}

		levels, err := parseLevels(req.Slippage)
		if err != nil {
			return err
		}

		tolerance := h.tolerance
		if req.Tolerance != "" {
			if tolerance, err = parseFraction(req.Tolerance); err != nil {
				return NewInvalidDecimal("tolerance")
			}
		}

		probe := h.probe
		if req.Probe != "" {
			if probe, err = parseProbe(req.Probe); err != nil {
				return NewInvalidAmountIn(err)
			}
		}

		report, err := h.service.Depth(c.Context(), service.DepthRequest{
			Pool:      common.HexToAddress(req.Pool),
			Src:       common.HexToAddress(req.Src),
			Dst:       common.HexToAddress(req.Dst),
			Levels:    levels,
			Tolerance: tolerance,
			Probe:     probe,
		})
		if err != nil {
			return h.handleServiceError(err)
		}

		return c.JSON(newDepthResponse(report, levels, tolerance))
	}
}

func newDepthResponse(report *service.DepthReport, levels []float64, tolerance float64) DepthResponse {
	resp := DepthResponse{
		Pool:      report.Pool.Hex(),
		Block:     report.Block,
		Src:       report.Src.Hex(),
		Dst:       report.Dst.Hex(),
		Tolerance: tolerance,
		Levels:    make([]DepthLevel, 0, len(report.Results)),
	}
	for i, res := range report.Results {
		resp.Levels = append(resp.Levels, toLevel(levels[i], res))
	}
	if len(report.Results) > 0 {
		resp.Spot = report.Results[0].Spot.Rat().FloatString(18)
	}
	return resp
}

func toLevel(level float64, res *depth.Result) DepthLevel {
	return DepthLevel{
		Slippage:     level,
		AmountIn:     res.AmountIn.Dec(),
		AmountOut:    res.AmountOut.Dec(),
		Realized:     res.Slippage.Float64(),
		BracketSteps: res.BracketSteps,
		BisectSteps:  res.BisectSteps,
	}
}

// parseLevels reads a comma separated list such as "0.01,0.02,0.05".
func parseLevels(raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrSlippageRequired
	}
	parts := strings.Split(raw, ",")
	if len(parts) > service.MaxLevels {
		return nil, ErrTooManyLevels
	}
	levels := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := parseFraction(p)
		if err != nil {
			return nil, NewInvalidDecimal("slippage")
		}
		levels = append(levels, v)
	}
	return levels, nil
}

var one = decimal.NewFromInt(1)

// parseFraction parses a decimal in [0, 1).
func parseFraction(raw string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if d.IsNegative() || d.GreaterThanOrEqual(one) {
		return 0, ErrInvalidQueryParameters
	}
	return d.InexactFloat64(), nil
}

func parseProbe(raw string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(raw)
	if err != nil {
		return nil, err
	}
	if v.IsZero() {
		return nil, ErrAmountNonPositive
	}
	return v, nil
}
