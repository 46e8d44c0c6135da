package report

import (
	"log/slog"
	"net/http"

	reportsvc "github.com/Macsarunrat/pink-rental/service/report"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reportsvc.Service
	Log *slog.Logger
}

// GET /v1/dashboard
func (h *Controller) Dashboard(c echo.Context) error {
	d, err := h.Svc.Dashboard(c.Request().Context())
	if err != nil {
		h.Log.Error("dashboard", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": d})
}
