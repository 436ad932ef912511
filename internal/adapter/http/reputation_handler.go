package http

import (
	"net/http"

	"peerlend-backend/internal/usecase/reputation"

	"github.com/labstack/echo/v4"
)

type ReputationHandler struct{ uc *reputation.Usecase }

func NewReputationHandler(uc *reputation.Usecase) *ReputationHandler {
	return &ReputationHandler{uc: uc}
}

type addReviewReq struct {
	Body string `json:"body" validate:"required,max=4096"`
}

func (h *ReputationHandler) AddReview(c echo.Context) error {
	userID := c.Param("user_id")
	if !reHex32.MatchString(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id must be 32-char lowercase hex"})
	}
	var req addReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	if err := h.uc.AddReview(c.Request().Context(), reputation.AddReviewInput{UserID: userID, Body: req.Body}); err != nil {
		return writeDomainErr(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *ReputationHandler) GetReputation(c echo.Context) error {
	userID := c.Param("user_id")
	if !reHex32.MatchString(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id must be 32-char lowercase hex"})
	}
	dto, err := h.uc.Get(c.Request().Context(), userID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
