package http

import (
	"errors"
	"net/http"
	"strings"

	guaranteeDomain "sacco-guarantor-service/internal/domain/guarantee"
	loanDomain "sacco-guarantor-service/internal/domain/loan"
	memberDomain "sacco-guarantor-service/internal/domain/member"

	"github.com/labstack/echo/v4"
)

// respondError maps every named domain failure onto exactly one HTTP
// status. Business-rule rejections carry their numbers in the payload
// so the client can correct the request without another round trip.
func respondError(c echo.Context, err error) error {
	var capErr *guaranteeDomain.InsufficientCapacityError
	if errors.As(err, &capErr) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":              capErr.Error(),
			"available_capacity": capErr.AvailableCapacity,
		})
	}
	var covErr *guaranteeDomain.CoverageInsufficientError
	if errors.As(err, &covErr) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":           covErr.Error(),
			"shortfall":       covErr.Shortfall,
			"guarantor_count": covErr.GuarantorCount,
			"min_guarantors":  covErr.MinGuarantors,
		})
	}

	switch {
	case errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, memberDomain.ErrNotFound),
		errors.Is(err, guaranteeDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, guaranteeDomain.ErrNotAuthorized):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	case errors.Is(err, guaranteeDomain.ErrSignatureRequired),
		errors.Is(err, guaranteeDomain.ErrReasonRequired),
		errors.Is(err, guaranteeDomain.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, guaranteeDomain.ErrSelfGuarantee),
		errors.Is(err, guaranteeDomain.ErrTenureNotMet):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})

	case errors.Is(err, guaranteeDomain.ErrDuplicate),
		errors.Is(err, guaranteeDomain.ErrAlreadyResolved),
		errors.Is(err, guaranteeDomain.ErrInvalidLoanState),
		errors.Is(err, guaranteeDomain.ErrInvalidState),
		errors.Is(err, guaranteeDomain.ErrRetryableConflict),
		errors.Is(err, loanDomain.ErrInvalidState):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// actingMemberID reads and validates the Ax-Member-Id header that names
// the authenticated member (set by the auth gateway in front of us).
func actingMemberID(c echo.Context) (string, bool) {
	v := strings.TrimSpace(c.Request().Header.Get("Ax-Member-Id"))
	return v, reHex32.MatchString(v)
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
