package http

import (
	"net/http"
	"time"

	"peerlend-backend/internal/adapter/middleware"
	"peerlend-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	Amount  uint64    `json:"amount" validate:"required,gt=0"`
	Rate    uint64    `json:"rate"`
	DueDate time.Time `json:"due_date" validate:"required"`
}

// fundsReq carries the supplied amount on take/repay. Zero is a
// well-formed amount; whether it suffices is the ledger's call.
type fundsReq struct {
	Funds uint64 `json:"funds"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		LenderID: middleware.ActorID(c),
		Amount:   req.Amount,
		Rate:     req.Rate,
		DueDate:  req.DueDate,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListAvailable(c echo.Context) error {
	dtos, err := h.uc.ListAvailable(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) TakeLoan(c echo.Context) error {
	var req fundsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Take(c.Request().Context(), loan.TakeLoanInput{
		BorrowerID: middleware.ActorID(c),
		LoanID:     c.Param("loan_id"),
		Funds:      req.Funds,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	var req fundsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	rec, err := h.uc.Repay(c.Request().Context(), loan.RepayLoanInput{
		BorrowerID: middleware.ActorID(c),
		LoanID:     c.Param("loan_id"),
		Funds:      req.Funds,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *LoanHandler) UserLoans(c echo.Context) error {
	userID := c.Param("user_id")
	if !reHex32.MatchString(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id must be 32-char lowercase hex"})
	}
	dto, err := h.uc.UserLoans(c.Request().Context(), userID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
