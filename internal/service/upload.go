package service

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"

	"hrportal/backend/foundation/web"
)

// MaxImageBytes caps profile image uploads.
const MaxImageBytes = 2 << 20

var (
	ErrNoFile      = errors.New("No file selected")
	ErrFileType    = errors.New("Invalid file type")
	ErrTooLarge    = errors.New("File is larger than 2 MB")
	ErrNotAnImage  = errors.New("File is not a readable image")
	ErrImageExists = errors.New("An image with this name was just uploaded, retry in a second")
)

var imageExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]`)

func InArray[T comparable](val T, array []T) bool {
	for _, v := range array {
		if val == v {
			return true
		}
	}
	return false
}

// ImageExtension returns the lower case extension of filename if it is an
// accepted image type.
func ImageExtension(filename string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return ext, InArray(ext, imageExtensions)
}

// SaveProfileImage stores file in dir as {empID}_{timestamp}.{ext} and
// returns the stored file name.
func SaveProfileImage(file *multipart.FileHeader, dir, empID string, now time.Time) (string, error) {
	if file == nil || file.Filename == "" {
		return "", web.NewRequestError(ErrNoFile, http.StatusBadRequest)
	}

	ext, ok := ImageExtension(file.Filename)
	if !ok {
		return "", web.NewRequestError(ErrFileType, http.StatusBadRequest)
	}
	if file.Size > MaxImageBytes {
		return "", web.NewRequestError(ErrTooLarge, http.StatusRequestEntityTooLarge)
	}

	src, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "opening upload")
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Println("file upload src.Close() error:", closeErr)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(src, MaxImageBytes+1))
	if err != nil {
		return "", errors.Wrap(err, "reading upload")
	}
	if len(data) > MaxImageBytes {
		return "", web.NewRequestError(ErrTooLarge, http.StatusRequestEntityTooLarge)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", web.NewRequestError(ErrNotAnImage, http.StatusBadRequest)
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "creating uploads dir")
	}

	name := unsafeName.ReplaceAllString(empID, "") + "_" + now.Format("20060102150405") + "." + ext

	out, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, os.ErrExist) {
		return "", web.NewRequestError(ErrImageExists, http.StatusConflict)
	}
	if err != nil {
		return "", errors.Wrap(err, "creating image file")
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			log.Println("file upload out.Close() error:", closeErr)
		}
	}()

	if _, err := io.Copy(out, bytes.NewReader(data)); err != nil {
		return "", errors.Wrap(err, "writing image file")
	}

	return name, nil
}
