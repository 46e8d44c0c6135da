package rental

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Macsarunrat/pink-rental/model"
	rentalsvc "github.com/Macsarunrat/pink-rental/service/rental"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

type Controller struct {
	Svc rentalsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/rentals
func (h *Controller) Create(c echo.Context) error {
	var req CreateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "start_date must be YYYY-MM-DD"})
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "end_date must be YYYY-MM-DD"})
	}

	m, err := h.Svc.Create(c.Request().Context(), rentalsvc.CreateInput{
		CustomerID:    req.CustomerID,
		DressID:       req.DressID,
		AccessoryIDs:  req.AccessoryIDs,
		StartDate:     start,
		EndDate:       end,
		PriceOverride: req.PriceOverride,
		Deposit:       req.Deposit,
		Note:          req.Note,
	})
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
		case rentalsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "referenced record not found"})
		}
		h.Log.Error("rental create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": m})
}

// GET /v1/rentals/conflicts?start=&end=&exclude=&accessory_ids=
//
// Dry-run probe for the booking form: reports accessory ids already
// claimed in the window without touching anything. With accessory_ids
// (comma-separated) the answer is narrowed to the requested set.
func (h *Controller) Conflicts(c echo.Context) error {
	start, err := time.Parse(dateLayout, c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "start must be YYYY-MM-DD"})
	}
	end, err := time.Parse(dateLayout, c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "end must be YYYY-MM-DD"})
	}
	var exclude int64
	if raw := c.QueryParam("exclude"); raw != "" {
		exclude, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "exclude must be an id"})
		}
	}

	var blocked []int64
	if raw := c.QueryParam("accessory_ids"); raw != "" {
		var wanted []int64
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"message": "accessory_ids must be a comma-separated id list"})
			}
			wanted = append(wanted, id)
		}
		blocked, err = h.Svc.Conflicting(c.Request().Context(), start, end, exclude, wanted)
	} else {
		blocked, err = h.Svc.Blacklist(c.Request().Context(), start, end, exclude)
	}
	if err != nil {
		h.Log.Error("rental conflicts", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"blocked_accessory_ids": blocked})
}

// GET /v1/rentals/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	m, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		if rentalsvc.Code(err) == rentalsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		}
		h.Log.Error("rental detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": m})
}

// PATCH /v1/rentals/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	m, err := h.Svc.UpdateStatus(c.Request().Context(), id, model.RentalStatus(req.Status))
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrBadStatus:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "status must be BOOKED, ACTIVE or RETURNED"})
		case rentalsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		}
		h.Log.Error("rental status", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": m})
}

// DELETE /v1/rentals/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if rentalsvc.Code(err) == rentalsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		}
		h.Log.Error("rental delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
