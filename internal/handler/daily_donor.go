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

// DonorImageHandler serves the daily donor image gallery.
type DonorImageHandler struct {
	Images    *repository.ImageRepo
	UploadDir string // root upload directory; donor files go under dailyDonors/
}

func NewDonorImageHandler(images *repository.ImageRepo, uploadDir string) *DonorImageHandler {
	return &DonorImageHandler{Images: images, UploadDir: uploadDir}
}

func (h *DonorImageHandler) dir() string { return filepath.Join(h.UploadDir, "dailyDonors") }

// List returns all daily donor images, newest first.  Public.
func (h *DonorImageHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	images, err := h.Images.ListDonorImages(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if images == nil {
		images = []model.DailyDonorImage{}
	}
	return c.JSON(http.StatusOK, images)
}

// Upload stores a new donor image.
func (h *DonorImageHandler) Upload(c echo.Context) error {
	filename, path, err := saveUpload(c, h.dir())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file uploaded"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	img := model.DailyDonorImage{Filename: filename, Path: path}
	if err := h.Images.CreateDonorImage(ctx, &img); err != nil {
		if rmErr := removeFile(path); rmErr != nil {
			log.Printf("donor-image: remove orphaned upload %s: %v", path, rmErr)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "daily donor image uploaded", "image": img})
}

// Update replaces the stored file for an existing record.
func (h *DonorImageHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	img, err := h.Images.GetDonorImage(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "image not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	filename, path, err := saveUpload(c, h.dir())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file uploaded"})
	}
	if err := h.Images.UpdateDonorImage(ctx, id, filename, path); err != nil {
		if rmErr := removeFile(path); rmErr != nil {
			log.Printf("donor-image: remove orphaned upload %s: %v", path, rmErr)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	// Drop the replaced file only after the record points at the new one.
	if err := removeFile(img.Path); err != nil {
		log.Printf("donor-image: remove old file %s: %v", img.Path, err)
	}

	img.Filename = filename
	img.Path = path
	return c.JSON(http.StatusOK, echo.Map{"msg": "image updated", "image": img})
}

// Delete removes a donor image record and its file.
func (h *DonorImageHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	img, err := h.Images.GetDonorImage(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "image not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := removeFile(img.Path); err != nil {
		log.Printf("donor-image: remove file %s: %v", img.Path, err)
	}
	if err := h.Images.DeleteDonorImage(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "image not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "image deleted"})
}
