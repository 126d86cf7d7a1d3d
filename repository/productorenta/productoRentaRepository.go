package productorentarepo

import (
	"context"
	"database/sql"

	"github.com/Aurosonic7/RentaProductoServer/model"
)

type Repo interface {
	ExistsRenta(ctx context.Context, rentaID int64) (bool, error)

	// Stock movement; callers own the transaction.
	ProductoForUpdate(ctx context.Context, tx *sql.Tx, productoID int64) (stock int, estado model.EstadoProducto, err error)
	DecrementStock(ctx context.Context, tx *sql.Tx, productoID int64, cantidad int) error
	IncrementStock(ctx context.Context, tx *sql.Tx, productoID int64, cantidad int) error
	Insert(ctx context.Context, tx *sql.Tx, rentaID, productoID int64, cantidad int) (int64, error)
	DeleteReturningCantidad(ctx context.Context, tx *sql.Tx, rentaID, productoID int64) (int, error)

	ListByUsuario(ctx context.Context, usuarioID int64) ([]model.ProductoRentado, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) ExistsRenta(ctx context.Context, rentaID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM rentas WHERE renta_id = $1)`, rentaID,
	).Scan(&ok)
	return ok, err
}

func (r *repo) ProductoForUpdate(ctx context.Context, tx *sql.Tx, productoID int64) (int, model.EstadoProducto, error) {
	var stock int
	var estado model.EstadoProducto
	err := tx.QueryRowContext(ctx,
		`SELECT stock, estado FROM productos WHERE producto_id = $1 FOR UPDATE`, productoID,
	).Scan(&stock, &estado)
	return stock, estado, err
}

func (r *repo) DecrementStock(ctx context.Context, tx *sql.Tx, productoID int64, cantidad int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE productos SET stock = stock - $2 WHERE producto_id = $1`, productoID, cantidad)
	return err
}

func (r *repo) IncrementStock(ctx context.Context, tx *sql.Tx, productoID int64, cantidad int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE productos SET stock = stock + $2 WHERE producto_id = $1`, productoID, cantidad)
	return err
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, rentaID, productoID int64, cantidad int) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO productos_rentas (renta_id, producto_id, cantidad)
		VALUES ($1,$2,$3)
		RETURNING renta_producto_id`,
		rentaID, productoID, cantidad,
	).Scan(&id)
	return id, err
}

func (r *repo) DeleteReturningCantidad(ctx context.Context, tx *sql.Tx, rentaID, productoID int64) (int, error) {
	var cantidad int
	err := tx.QueryRowContext(ctx, `
		DELETE FROM productos_rentas
		WHERE renta_id = $1 AND producto_id = $2
		RETURNING cantidad`,
		rentaID, productoID,
	).Scan(&cantidad)
	return cantidad, err
}

func (r *repo) ListByUsuario(ctx context.Context, usuarioID int64) ([]model.ProductoRentado, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.renta_id, r.estado, p.producto_id, p.nombre, p.imagen, p.tarifa_renta, pr.cantidad
		FROM rentas r
		JOIN productos_rentas pr ON pr.renta_id = r.renta_id
		JOIN productos p ON p.producto_id = pr.producto_id
		WHERE r.usuario_id = $1
		ORDER BY r.renta_id DESC, p.producto_id`,
		usuarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ProductoRentado
	for rows.Next() {
		var pr model.ProductoRentado
		if err := rows.Scan(&pr.RentaID, &pr.EstadoRenta, &pr.ProductoID, &pr.Nombre, &pr.Imagen, &pr.TarifaRenta, &pr.Cantidad); err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}
