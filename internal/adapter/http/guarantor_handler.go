package http

import (
	"net/http"

	"sacco-guarantor-service/internal/usecase/eligibility"
	guaranteeUC "sacco-guarantor-service/internal/usecase/guarantee"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// GuarantorHandler serves the staff/borrower side: searching candidates
// and attaching/detaching guarantors on a loan.
type GuarantorHandler struct {
	elig *eligibility.Usecase
	guar *guaranteeUC.Usecase
}

func NewGuarantorHandler(elig *eligibility.Usecase, guar *guaranteeUC.Usecase) *GuarantorHandler {
	return &GuarantorHandler{elig: elig, guar: guar}
}

func (h *GuarantorHandler) SearchEligible(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	out, err := h.elig.Search(c.Request().Context(), loanID, c.QueryParam("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type addGuarantorReq struct {
	GuarantorMemberID string          `json:"guarantor_member_id" validate:"required,hex32"`
	Amount            decimal.Decimal `json:"amount"              validate:"required,gt=0,dec2"`
}

func (h *GuarantorHandler) AddGuarantor(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	var req addGuarantorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.guar.AddGuarantor(c.Request().Context(), guaranteeUC.AddGuarantorInput{
		LoanID:            loanID,
		GuarantorMemberID: req.GuarantorMemberID,
		Amount:            req.Amount,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *GuarantorHandler) RemoveGuarantor(c echo.Context) error {
	loanID := c.Param("loan_id")
	memberID := c.Param("member_id")
	if !reHex32.MatchString(loanID) || !reHex32.MatchString(memberID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid path params"})
	}
	if err := h.guar.RemoveGuarantor(c.Request().Context(), loanID, memberID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *GuarantorHandler) ListGuarantors(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	out, err := h.guar.ListForLoan(c.Request().Context(), loanID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
