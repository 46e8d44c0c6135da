package portal

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	portalsvc "github.com/Macsarunrat/pink-rental/service/portal"
	rentalsvc "github.com/Macsarunrat/pink-rental/service/rental"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc     portalsvc.Service
	Rentals rentalsvc.Service
	V       *validator.Validate
	Log     *slog.Logger
}

// POST /portal/login
func (h *Controller) Login(c echo.Context) error {
	var req LoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "phone is required"})
	}

	sess, cust, err := h.Svc.Login(c.Request().Context(), req.Phone)
	if err != nil {
		if errors.Is(err, portalsvc.ErrUnknownPhone) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "phone number not recognized"})
		}
		h.Log.Error("portal login", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
		"customer":   cust,
	})
}

// POST /portal/logout
func (h *Controller) Logout(c echo.Context) error {
	token, _ := c.Get("portal_token").(string)
	if err := h.Svc.Logout(c.Request().Context(), token); err != nil {
		h.Log.Error("portal logout", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// GET /portal/rentals
func (h *Controller) MyRentals(c echo.Context) error {
	cid, _ := c.Get("customer_id").(int64)
	rows, err := h.Svc.MyRentals(c.Request().Context(), cid)
	if err != nil {
		h.Log.Error("portal rentals", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /portal/rentals/:id/accessories
func (h *Controller) AccessoryOptions(c echo.Context) error {
	cid, _ := c.Get("customer_id").(int64)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	opts, err := h.Svc.AccessoryOptions(c.Request().Context(), id, cid)
	if err != nil {
		switch {
		case errors.Is(err, portalsvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case errors.Is(err, portalsvc.ErrNotOwner):
			// Not this customer's rental; bounce back to their own list.
			return c.Redirect(http.StatusSeeOther, "/portal/rentals")
		}
		h.Log.Error("portal options", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": opts})
}

// PUT /portal/rentals/:id/accessories
func (h *Controller) SelectAccessories(c echo.Context) error {
	cid, _ := c.Get("customer_id").(int64)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req SelectAccessoriesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	err = h.Rentals.SelectAccessories(c.Request().Context(), id, cid, req.AccessoryIDs)
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrCapExceeded:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"message": "you can pick at most 2 accessories",
			})
		case rentalsvc.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
		case rentalsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental or accessory not found"})
		case rentalsvc.ErrNotOwner:
			return c.Redirect(http.StatusSeeOther, "/portal/rentals")
		}
		h.Log.Error("portal select", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "accessories updated"})
}
