package productorentasvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Aurosonic7/RentaProductoServer/model"
)

type ErrCode string

const (
	ErrRentaMissing    ErrCode = "RENTA_NOT_FOUND"
	ErrProductoMissing ErrCode = "PRODUCTO_NOT_FOUND"
	ErrNoDisponible    ErrCode = "PRODUCTO_NO_DISPONIBLE"
	ErrBadCantidad     ErrCode = "CANTIDAD_INVALIDA"
	ErrStock           ErrCode = "STOCK_INSUFICIENTE"
	ErrYaAsociado      ErrCode = "YA_ASOCIADO"
	ErrNoAsociado      ErrCode = "NO_ASOCIADO"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Repo is the slice of the productorenta repository this service needs.
type Repo interface {
	ExistsRenta(ctx context.Context, rentaID int64) (bool, error)
	ProductoForUpdate(ctx context.Context, tx *sql.Tx, productoID int64) (int, model.EstadoProducto, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, productoID int64, cantidad int) error
	IncrementStock(ctx context.Context, tx *sql.Tx, productoID int64, cantidad int) error
	Insert(ctx context.Context, tx *sql.Tx, rentaID, productoID int64, cantidad int) (int64, error)
	DeleteReturningCantidad(ctx context.Context, tx *sql.Tx, rentaID, productoID int64) (int, error)
	ListByUsuario(ctx context.Context, usuarioID int64) ([]model.ProductoRentado, error)
}

type Service interface {
	// Agregar reserves cantidad units of the producto against the renta. The
	// stock check and decrement happen under a row lock so concurrent calls
	// cannot drive stock negative.
	Agregar(ctx context.Context, rentaID, productoID int64, cantidad int) (int64, error)
	// Remover releases the association and returns its quantity to stock.
	Remover(ctx context.Context, rentaID, productoID int64) error
	PorUsuario(ctx context.Context, usuarioID int64) ([]model.ProductoRentado, error)
}

type service struct {
	db *sql.DB
	r  Repo
}

func New(db *sql.DB, r Repo) Service { return &service{db: db, r: r} }

func (s *service) Agregar(ctx context.Context, rentaID, productoID int64, cantidad int) (id int64, err error) {
	if cantidad <= 0 {
		return 0, makeErr(ErrBadCantidad)
	}

	ok, err := s.r.ExistsRenta(ctx, rentaID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, makeErr(ErrRentaMissing)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stock, estado, err := s.r.ProductoForUpdate(ctx, tx, productoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, makeErr(ErrProductoMissing)
		}
		return 0, err
	}
	if estado != model.ProductoDisponible {
		return 0, makeErr(ErrNoDisponible)
	}
	if cantidad > stock {
		return 0, makeErr(ErrStock)
	}

	if err = s.r.DecrementStock(ctx, tx, productoID, cantidad); err != nil {
		return 0, err
	}

	id, err = s.r.Insert(ctx, tx, rentaID, productoID, cantidad)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, makeErr(ErrYaAsociado)
		}
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *service) Remover(ctx context.Context, rentaID, productoID int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cantidad, err := s.r.DeleteReturningCantidad(ctx, tx, rentaID, productoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNoAsociado)
		}
		return err
	}
	if err = s.r.IncrementStock(ctx, tx, productoID, cantidad); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) PorUsuario(ctx context.Context, usuarioID int64) ([]model.ProductoRentado, error) {
	return s.r.ListByUsuario(ctx, usuarioID)
}
