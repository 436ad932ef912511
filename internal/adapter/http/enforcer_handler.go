package http

import (
	"net/http"

	"peerlend-backend/internal/usecase/enforcer"

	"github.com/labstack/echo/v4"
)

type EnforcerHandler struct{ uc *enforcer.Usecase }

func NewEnforcerHandler(uc *enforcer.Usecase) *EnforcerHandler {
	return &EnforcerHandler{uc: uc}
}

// Sweep is the external trigger for the due-date pass; idempotent while
// the clock stands still.
func (h *EnforcerHandler) Sweep(c echo.Context) error {
	res, err := h.uc.Sweep(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
