package accessory

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	accessorysvc "github.com/Macsarunrat/pink-rental/service/accessory"
	imgutil "github.com/Macsarunrat/pink-rental/util/imaging"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc       accessorysvc.Service
	V         *validator.Validate
	Log       *slog.Logger
	UploadDir string
}

type CreateAccessoryReq struct {
	Name string `json:"name" validate:"required"`
}

// POST /v1/accessories
func (h *Controller) Create(c echo.Context) error {
	var req CreateAccessoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.Create(c.Request().Context(), req.Name)
	if err != nil {
		if errors.Is(err, accessorysvc.ErrBadInput) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		}
		h.Log.Error("accessory create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// POST /v1/accessories/:id/image
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

	rel := fmt.Sprintf("accessories/%d.jpg", id)
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
		if errors.Is(err, accessorysvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "accessory not found"})
		}
		h.Log.Error("accessory set image", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"image_path": rel})
}

// GET /v1/accessories
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("accessory list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// DELETE /v1/accessories/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, accessorysvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "accessory not found"})
		}
		h.Log.Error("accessory delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
