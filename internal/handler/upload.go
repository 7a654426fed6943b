package handler

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
)

// saveUpload copies the multipart file under field "image" into
// destDir, creating the directory as needed.  The stored name is a
// timestamp plus random suffix with the original extension preserved,
// so concurrent uploads never collide.  It returns the generated
// filename and the on-disk path.
func saveUpload(c echo.Context, destDir string) (filename, path string, err error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", "", err
	}
	src, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", "", err
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", "", err
	}
	filename = fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(suffix), filepath.Ext(fh.Filename))
	path = filepath.Join(destDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", "", err
	}
	return filename, path, nil
}

// removeFile deletes an uploaded file, tolerating one that is already
// gone.  Disk cleanup failures are not fatal for record removal.
func removeFile(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
