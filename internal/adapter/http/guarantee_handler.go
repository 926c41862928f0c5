package http

import (
	"net/http"

	guaranteeUC "sacco-guarantor-service/internal/usecase/guarantee"

	"github.com/labstack/echo/v4"
)

// GuaranteeHandler serves the guarantor side: approving or declining a
// pledge the member was named on.
type GuaranteeHandler struct{ uc *guaranteeUC.Usecase }

func NewGuaranteeHandler(uc *guaranteeUC.Usecase) *GuaranteeHandler {
	return &GuaranteeHandler{uc: uc}
}

type approveReq struct {
	SignatureKey string `json:"signature_key" validate:"required"`
}

type declineReq struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *GuaranteeHandler) Approve(c echo.Context) error {
	guaranteeID := c.Param("guarantee_id")
	if !reHex32.MatchString(guaranteeID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid guarantee_id path param"})
	}
	actor, ok := actingMemberID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Member-Id"})
	}
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Approve(c.Request().Context(), guaranteeUC.ResolveInput{
		GuaranteeID:    guaranteeID,
		ActingMemberID: actor,
		SignatureKey:   req.SignatureKey,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *GuaranteeHandler) Decline(c echo.Context) error {
	guaranteeID := c.Param("guarantee_id")
	if !reHex32.MatchString(guaranteeID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid guarantee_id path param"})
	}
	actor, ok := actingMemberID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Member-Id"})
	}
	var req declineReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Decline(c.Request().Context(), guaranteeUC.ResolveInput{
		GuaranteeID:    guaranteeID,
		ActingMemberID: actor,
		Reason:         req.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *GuaranteeHandler) Get(c echo.Context) error {
	guaranteeID := c.Param("guarantee_id")
	if !reHex32.MatchString(guaranteeID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid guarantee_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), guaranteeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
