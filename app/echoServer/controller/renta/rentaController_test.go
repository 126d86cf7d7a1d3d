package renta

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Aurosonic7/RentaProductoServer/model"
	rentasvc "github.com/Aurosonic7/RentaProductoServer/service/renta"
)

type mockSvc struct {
	finalizarFn func(ctx context.Context, id int64) error
}

var _ rentasvc.Service = (*mockSvc)(nil)

func (m *mockSvc) Create(ctx context.Context, re *model.Renta) error       { return nil }
func (m *mockSvc) ByID(ctx context.Context, id int64) (*model.Renta, error) { return nil, nil }
func (m *mockSvc) List(ctx context.Context) ([]model.Renta, error)        { return nil, nil }
func (m *mockSvc) UpdateEstado(ctx context.Context, id int64, estado model.EstadoRenta) error {
	return nil
}
func (m *mockSvc) Delete(ctx context.Context, id int64) error { return nil }
func (m *mockSvc) Finalizar(ctx context.Context, id int64) error {
	if m.finalizarFn == nil {
		return nil
	}
	return m.finalizarFn(ctx, id)
}

type codedErr struct{ code rentasvc.ErrCode }

func (e codedErr) Error() string          { return string(e.code) }
func (e codedErr) Code() rentasvc.ErrCode { return e.code }

func newFinalizarContext(t *testing.T, id string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func newController(svc rentasvc.Service) *Controller {
	return &Controller{
		Svc: svc,
		V:   validator.New(),
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestFinalizar_EstadoNoFinalizable(t *testing.T) {
	h := newController(&mockSvc{finalizarFn: func(ctx context.Context, id int64) error {
		return codedErr{code: rentasvc.ErrNotFinalizable}
	}})

	c, rec := newFinalizarContext(t, "5")
	require.NoError(t, h.Finalizar(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFinalizar_NotFound(t *testing.T) {
	h := newController(&mockSvc{finalizarFn: func(ctx context.Context, id int64) error {
		return codedErr{code: rentasvc.ErrNotFound}
	}})

	c, rec := newFinalizarContext(t, "404")
	require.NoError(t, h.Finalizar(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFinalizar_Success(t *testing.T) {
	var gotID int64
	h := newController(&mockSvc{finalizarFn: func(ctx context.Context, id int64) error {
		gotID = id
		return nil
	}})

	c, rec := newFinalizarContext(t, "5")
	require.NoError(t, h.Finalizar(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(5), gotID)
}

func TestFinalizar_BadID(t *testing.T) {
	h := newController(&mockSvc{})

	c, rec := newFinalizarContext(t, "abc")
	require.NoError(t, h.Finalizar(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
