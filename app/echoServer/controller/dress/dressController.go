package dress

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Macsarunrat/pink-rental/model"
	dresssvc "github.com/Macsarunrat/pink-rental/service/dress"
	imgutil "github.com/Macsarunrat/pink-rental/util/imaging"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc       dresssvc.Service
	V         *validator.Validate
	Log       *slog.Logger
	UploadDir string
}

// POST /v1/dresses
func (h *Controller) Create(c echo.Context) error {
	var req CreateDressReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.Create(c.Request().Context(), req.Name, req.CostPrice, req.RentalPrice)
	if err != nil {
		if errors.Is(err, dresssvc.ErrBadInput) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		}
		h.Log.Error("dress create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// PUT /v1/dresses/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateDressReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	d := &model.Dress{
		ID:          id,
		Name:        req.Name,
		CostPrice:   req.CostPrice,
		RentalPrice: req.RentalPrice,
		IsAvailable: req.IsAvailable,
	}
	if err := h.Svc.Update(c.Request().Context(), d); err != nil {
		switch {
		case errors.Is(err, dresssvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "dress not found"})
		case errors.Is(err, dresssvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			h.Log.Error("dress update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
}

// POST /v1/dresses/:id/image
//
// Accepts a multipart "image" file; the stored copy is reoriented, bounded
// to 800px and re-encoded as JPEG.
func (h *Controller) UploadImage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "image file required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "cannot read image"})
	}
	defer src.Close()

	normalized, err := imgutil.Normalize(src)
	if err != nil {
		h.Log.Warn("image normalize", "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unsupported image"})
	}

	rel := fmt.Sprintf("dresses/%d.jpg", id)
	full := filepath.Join(h.UploadDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		h.Log.Error("image dir", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if err := os.WriteFile(full, normalized, 0o644); err != nil {
		h.Log.Error("image write", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	if err := h.Svc.SetImage(c.Request().Context(), id, rel); err != nil {
		if errors.Is(err, dresssvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "dress not found"})
		}
		h.Log.Error("dress set image", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"image_path": rel})
}

// GET /v1/dresses
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("dress list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/dresses/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, dresssvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "dress not found"})
		}
		h.Log.Error("dress detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}

// DELETE /v1/dresses/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, dresssvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "dress not found"})
		}
		h.Log.Error("dress delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
