package rentasvc

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Aurosonic7/RentaProductoServer/model"
)

type mockRepo struct {
	createFn          func(ctx context.Context, re *model.Renta) error
	existsUsuarioFn   func(ctx context.Context, usuarioID int64) (bool, error)
	estadoForUpdateFn func(ctx context.Context, tx *sql.Tx, id int64) (model.EstadoRenta, error)
	setEstadoFn       func(ctx context.Context, tx *sql.Tx, id int64, estado model.EstadoRenta) error
	restoreStockFn    func(ctx context.Context, tx *sql.Tx, rentaID int64) error
	updateEstadoFn    func(ctx context.Context, id int64, estado model.EstadoRenta) error
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, re *model.Renta) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, re)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.Renta, error) {
	return nil, sql.ErrNoRows
}

func (m *mockRepo) List(ctx context.Context) ([]model.Renta, error) { return nil, nil }

func (m *mockRepo) UpdateEstado(ctx context.Context, id int64, estado model.EstadoRenta) error {
	if m.updateEstadoFn == nil {
		return nil
	}
	return m.updateEstadoFn(ctx, id, estado)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error { return nil }

func (m *mockRepo) ExistsUsuario(ctx context.Context, usuarioID int64) (bool, error) {
	if m.existsUsuarioFn == nil {
		return true, nil
	}
	return m.existsUsuarioFn(ctx, usuarioID)
}

func (m *mockRepo) EstadoForUpdate(ctx context.Context, tx *sql.Tx, id int64) (model.EstadoRenta, error) {
	if m.estadoForUpdateFn == nil {
		return "", sql.ErrNoRows
	}
	return m.estadoForUpdateFn(ctx, tx, id)
}

func (m *mockRepo) SetEstado(ctx context.Context, tx *sql.Tx, id int64, estado model.EstadoRenta) error {
	if m.setEstadoFn == nil {
		return nil
	}
	return m.setEstadoFn(ctx, tx, id, estado)
}

func (m *mockRepo) RestoreStock(ctx context.Context, tx *sql.Tx, rentaID int64) error {
	if m.restoreStockFn == nil {
		return nil
	}
	return m.restoreStockFn(ctx, tx, rentaID)
}

func validRenta() *model.Renta {
	inicio := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &model.Renta{
		UsuarioID:       1,
		FechaInicio:     inicio,
		FechaFin:        inicio.AddDate(0, 0, 7),
		FechaDevolucion: inicio.AddDate(0, 0, 8),
		Total:           decimal.NewFromInt(150),
	}
}

func TestCreate_FechaFinNoPosterior(t *testing.T) {
	touched := false
	m := &mockRepo{createFn: func(ctx context.Context, re *model.Renta) error {
		touched = true
		return nil
	}}
	svc := New(nil, m)

	re := validRenta()
	re.FechaFin = re.FechaInicio
	err := svc.Create(context.Background(), re)
	require.Equal(t, ErrFechaFin, Code(err))
	require.False(t, touched)
}

func TestCreate_FechaDevolucionNoPosterior(t *testing.T) {
	svc := New(nil, &mockRepo{})

	re := validRenta()
	re.FechaDevolucion = re.FechaFin
	err := svc.Create(context.Background(), re)
	require.Equal(t, ErrFechaDev, Code(err))
}

func TestCreate_TotalInvalido(t *testing.T) {
	svc := New(nil, &mockRepo{})

	re := validRenta()
	re.Total = decimal.Zero
	err := svc.Create(context.Background(), re)
	require.Equal(t, ErrBadTotal, Code(err))

	re = validRenta()
	re.Total = decimal.NewFromInt(-5)
	err = svc.Create(context.Background(), re)
	require.Equal(t, ErrBadTotal, Code(err))
}

func TestCreate_EstadoInvalido(t *testing.T) {
	svc := New(nil, &mockRepo{})

	re := validRenta()
	re.Estado = "vencida"
	err := svc.Create(context.Background(), re)
	require.Equal(t, ErrBadEstado, Code(err))
}

func TestCreate_UsuarioInexistente(t *testing.T) {
	m := &mockRepo{existsUsuarioFn: func(ctx context.Context, usuarioID int64) (bool, error) {
		return false, nil
	}}
	svc := New(nil, m)

	err := svc.Create(context.Background(), validRenta())
	require.Equal(t, ErrUsuarioMissing, Code(err))
}

func TestCreate_EstadoPorDefecto(t *testing.T) {
	var got model.EstadoRenta
	m := &mockRepo{createFn: func(ctx context.Context, re *model.Renta) error {
		got = re.Estado
		return nil
	}}
	svc := New(nil, m)

	require.NoError(t, svc.Create(context.Background(), validRenta()))
	require.Equal(t, model.RentaPendiente, got)
}

func TestUpdateEstado_Invalido(t *testing.T) {
	svc := New(nil, &mockRepo{})

	err := svc.UpdateEstado(context.Background(), 1, "vencida")
	require.Equal(t, ErrBadEstado, Code(err))
}

func TestUpdateEstado_NotFound(t *testing.T) {
	m := &mockRepo{updateEstadoFn: func(ctx context.Context, id int64, estado model.EstadoRenta) error {
		return sql.ErrNoRows
	}}
	svc := New(nil, m)

	err := svc.UpdateEstado(context.Background(), 99, model.RentaActiva)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestFinalizar_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	restored := false
	var estadoSet model.EstadoRenta
	m := &mockRepo{
		estadoForUpdateFn: func(ctx context.Context, tx *sql.Tx, id int64) (model.EstadoRenta, error) {
			return model.RentaActiva, nil
		},
		restoreStockFn: func(ctx context.Context, tx *sql.Tx, rentaID int64) error {
			restored = true
			return nil
		},
		setEstadoFn: func(ctx context.Context, tx *sql.Tx, id int64, estado model.EstadoRenta) error {
			estadoSet = estado
			return nil
		},
	}
	svc := New(db, m)

	require.NoError(t, svc.Finalizar(context.Background(), 5))
	require.True(t, restored)
	require.Equal(t, model.RentaFinalizada, estadoSet)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalizar_YaFinalizada(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	restored := false
	m := &mockRepo{
		estadoForUpdateFn: func(ctx context.Context, tx *sql.Tx, id int64) (model.EstadoRenta, error) {
			return model.RentaFinalizada, nil
		},
		restoreStockFn: func(ctx context.Context, tx *sql.Tx, rentaID int64) error {
			restored = true
			return nil
		},
	}
	svc := New(db, m)

	err = svc.Finalizar(context.Background(), 5)
	require.Equal(t, ErrNotFinalizable, Code(err))
	require.False(t, restored)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalizar_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := New(db, &mockRepo{})

	err = svc.Finalizar(context.Background(), 404)
	require.Equal(t, ErrNotFound, Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
