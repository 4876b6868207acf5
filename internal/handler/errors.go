package handler

import "github.com/gofiber/fiber/v3"

// ErrInvalidQueryParameters indicates that the request query string could not
// be parsed into the expected structure.
var ErrInvalidQueryParameters = fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")

// ErrSameAddresses is returned when src and dst addresses are identical.
var ErrSameAddresses = fiber.NewError(fiber.StatusBadRequest, "src and dst addresses cannot be the same")

// ErrAmountRequired is returned when the amount parameter is missing.
var ErrAmountRequired = fiber.NewError(fiber.StatusBadRequest, "amount is required")

// ErrInvalidAmountFormat is returned when the amount cannot be parsed as a
// base-10 integer.
var ErrInvalidAmountFormat = fiber.NewError(fiber.StatusBadRequest, "invalid amount format")

// ErrAmountNonPositive is returned when the amount is zero or negative.
var ErrAmountNonPositive = fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")

// ErrSlippageRequired is returned when no slippage level is given.
var ErrSlippageRequired = fiber.NewError(fiber.StatusBadRequest, "slippage is required")

// ErrTooManyLevels is returned when more slippage levels are requested than
// one profile may run.
var ErrTooManyLevels = fiber.NewError(fiber.StatusBadRequest, "too many slippage levels")

// ErrSameTokenBadRequest maps a same-token validation failure to a 400 error.
var ErrSameTokenBadRequest = fiber.NewError(fiber.StatusBadRequest, "src and dst tokens cannot be the same")

// ErrPairMismatchBadRequest maps a src/dst pair not traded by the pool to a 400 error.
var ErrPairMismatchBadRequest = fiber.NewError(fiber.StatusBadRequest, "pool does not trade src/dst")

// ErrEmptyReservesBadRequest maps empty-reserve pool state to a 400 error.
var ErrEmptyReservesBadRequest = fiber.NewError(fiber.StatusBadRequest, "pool has insufficient reserves")

// ErrToleranceUnattainable maps a search whose interval collapsed without
// meeting the tolerance to a 422 error.
var ErrToleranceUnattainable = fiber.NewError(fiber.StatusUnprocessableEntity, "tolerance unattainable for this pool")

// ErrSearchOverflow maps an arithmetic overflow during the search to a 422 error.
var ErrSearchOverflow = fiber.NewError(fiber.StatusUnprocessableEntity, "search exceeded 256-bit range")

// ErrInvalidSearchInput maps a search rejected for its inputs, such as a zero
// spot price, to a 400 error.
var ErrInvalidSearchInput = fiber.NewError(fiber.StatusBadRequest, "invalid search input")

// ErrSearchTimeout is returned when the search deadline expires.
var ErrSearchTimeout = fiber.NewError(fiber.StatusGatewayTimeout, "search timed out")

// ErrEstimationFailedInternal signals a generic server-side estimation error.
var ErrEstimationFailedInternal = fiber.NewError(fiber.StatusInternalServerError, "estimation failed")

// NewInvalidAmountIn wraps an amount parsing error into a 400 Bad Request with
// a descriptive message.
func NewInvalidAmountIn(err error) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid amount_in: "+err.Error())
}

// NewAddressRequired returns a 400 Bad Request for a missing address field.
func NewAddressRequired(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, field+" address is required")
}

// NewInvalidAddress returns a 400 Bad Request for an invalid address format.
func NewInvalidAddress(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid "+field+" address")
}

// NewInvalidDecimal returns a 400 Bad Request for a field that must be a
// decimal fraction in [0, 1).
func NewInvalidDecimal(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid "+field+": must be a decimal in [0, 1)")
}
