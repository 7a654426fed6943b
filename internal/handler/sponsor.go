package handler

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmbtrust/donation-backend/internal/model"
	"github.com/jmbtrust/donation-backend/internal/repository"
)

// SponsorHandler serves the sponsor image singleton.
type SponsorHandler struct {
	Images    *repository.ImageRepo
	UploadDir string // root upload directory; sponsor files go under sponsors/
}

func NewSponsorHandler(images *repository.ImageRepo, uploadDir string) *SponsorHandler {
	return &SponsorHandler{Images: images, UploadDir: uploadDir}
}

func (h *SponsorHandler) dir() string { return filepath.Join(h.UploadDir, "sponsors") }

// List returns the current sponsor image, if any.
func (h *SponsorHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sponsors, err := h.Images.ListSponsors(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if sponsors == nil {
		sponsors = []model.Sponsor{}
	}
	return c.JSON(http.StatusOK, sponsors)
}

// Create uploads the sponsor image.  Only one may exist at a time: while a
// record is present the request is refused and the caller must delete the
// existing image first.
func (h *SponsorHandler) Create(c echo.Context) error {
	filename, path, err := saveUpload(c, h.dir())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file uploaded"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := model.Sponsor{Filename: filename}
	if err := h.Images.CreateSponsor(ctx, &s); err != nil {
		// The upload already hit disk; drop it so refused requests leave
		// nothing behind.
		if rmErr := removeFile(path); rmErr != nil {
			log.Printf("sponsor: remove orphaned upload %s: %v", path, rmErr)
		}
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "only one sponsor image is allowed; delete the existing image first"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create sponsor failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// Delete removes the sponsor record and its file from disk.
func (h *SponsorHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Images.GetSponsor(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sponsor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := removeFile(filepath.Join(h.dir(), s.Filename)); err != nil {
		// Disk cleanup failure should not block freeing the singleton slot.
		log.Printf("sponsor: remove file %s: %v", s.Filename, err)
	}
	if err := h.Images.DeleteSponsor(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sponsor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "sponsor deleted"})
}
