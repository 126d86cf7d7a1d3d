// Package upload reads an image out of a multipart form and produces the
// sanitized file-store name for it.
package upload

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const MaxFileSize = 5 << 20 // 5MB

var (
	ErrNoFile   = errors.New("no file in form")
	ErrTooLarge = errors.New("file exceeds 5MB")
	ErrBadType  = errors.New("only jpeg, jpg and png images are allowed")
)

var allowedExt = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
}

// ImageFromForm returns the bytes and normalized extension of the image in
// the given form field. A missing field is reported as ErrNoFile so callers
// can decide whether the upload is mandatory.
func ImageFromForm(c echo.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", ErrNoFile
	}
	if fh.Size > MaxFileSize {
		return nil, "", ErrTooLarge
	}
	ext, ok := allowedExt[strings.ToLower(fh.Header.Get("Content-Type"))]
	if !ok {
		return nil, "", ErrBadType
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > MaxFileSize {
		return nil, "", ErrTooLarge
	}
	return data, ext, nil
}

// FileName builds "<sanitized base>_<unix ms>.<ext>".
func FileName(base, ext string) string {
	return fmt.Sprintf("%s_%d.%s", Sanitize(base), time.Now().UnixMilli(), ext)
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Sanitize strips accents and replaces anything outside [a-z0-9] with an
// underscore.
func Sanitize(name string) string {
	plain, _, err := transform.String(stripAccents, name)
	if err != nil {
		plain = name
	}
	plain = strings.ToLower(plain)
	var b strings.Builder
	for _, r := range plain {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
