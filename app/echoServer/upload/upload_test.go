package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"Taladro":          "taladro",
		"Cámara Réflex":    "camara_reflex",
		"niño & año 2026":  "nino___ano_2026",
		"___":              "___",
		"ÁÉÍÓÚ":            "aeiou",
	}
	for in, want := range cases {
		require.Equal(t, want, Sanitize(in), "input %q", in)
	}
}

func TestFileName(t *testing.T) {
	got := FileName("Cámara Réflex", "jpg")
	require.True(t, strings.HasPrefix(got, "camara_reflex_"))
	require.True(t, strings.HasSuffix(got, ".jpg"))
}

func newUploadContext(t *testing.T, field, filename, contentType string, data []byte) echo.Context {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec)
}

func TestImageFromForm_Success(t *testing.T) {
	c := newUploadContext(t, "imagen", "foto.png", "image/png", []byte("png-bytes"))

	data, ext, err := ImageFromForm(c, "imagen")
	require.NoError(t, err)
	require.Equal(t, "png", ext)
	require.Equal(t, []byte("png-bytes"), data)
}

func TestImageFromForm_JpegNormalized(t *testing.T) {
	c := newUploadContext(t, "imagen", "foto.jpeg", "image/jpeg", []byte("jpg-bytes"))

	_, ext, err := ImageFromForm(c, "imagen")
	require.NoError(t, err)
	require.Equal(t, "jpg", ext)
}

func TestImageFromForm_Missing(t *testing.T) {
	c := newUploadContext(t, "otra", "foto.png", "image/png", []byte("x"))

	_, _, err := ImageFromForm(c, "imagen")
	require.ErrorIs(t, err, ErrNoFile)
}

func TestImageFromForm_BadType(t *testing.T) {
	c := newUploadContext(t, "imagen", "doc.pdf", "application/pdf", []byte("x"))

	_, _, err := ImageFromForm(c, "imagen")
	require.ErrorIs(t, err, ErrBadType)
}
