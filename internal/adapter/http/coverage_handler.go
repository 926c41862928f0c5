package http

import (
	"net/http"

	"sacco-guarantor-service/internal/usecase/coverage"

	"github.com/labstack/echo/v4"
)

type CoverageHandler struct{ uc *coverage.Usecase }

func NewCoverageHandler(uc *coverage.Usecase) *CoverageHandler {
	return &CoverageHandler{uc: uc}
}

func (h *CoverageHandler) GetCoverage(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	dto, err := h.uc.Compute(c.Request().Context(), loanID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// SubmitLoan gates DRAFT → SUBMITTED on the coverage aggregator.
func (h *CoverageHandler) SubmitLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	dto, err := h.uc.Submit(c.Request().Context(), loanID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
