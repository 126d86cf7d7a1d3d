package productorepo

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/Aurosonic7/RentaProductoServer/model"
)

type Update struct {
	Nombre      *string
	Descripcion *string
	Estado      *model.EstadoProducto
	TarifaRenta *decimal.Decimal
	Imagen      *string
	Stock       *int
	UsuarioID   *int64
	CategoriaID *int64
}

type Repo interface {
	Create(ctx context.Context, p *model.Producto) error
	ByID(ctx context.Context, id int64) (*model.Producto, error)
	List(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, id int64, up Update) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const cols = `producto_id, nombre, descripcion, estado, tarifa_renta, fecha_adquisicion, imagen, stock, usuario_id, categoria_id`

func (r *repo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO productos (nombre, descripcion, estado, tarifa_renta, fecha_adquisicion, imagen, stock, usuario_id, categoria_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING producto_id`,
		p.Nombre, p.Descripcion, p.Estado, p.TarifaRenta, p.FechaAdquisicion, p.Imagen, p.Stock, p.UsuarioID, p.CategoriaID,
	).Scan(&p.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Producto, error) {
	p := &model.Producto{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+cols+` FROM productos WHERE producto_id = $1`, id,
	).Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Estado, &p.TarifaRenta, &p.FechaAdquisicion, &p.Imagen, &p.Stock, &p.UsuarioID, &p.CategoriaID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repo) List(ctx context.Context) ([]model.Producto, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cols+` FROM productos ORDER BY producto_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Producto
	for rows.Next() {
		var p model.Producto
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Estado, &p.TarifaRenta, &p.FechaAdquisicion, &p.Imagen, &p.Stock, &p.UsuarioID, &p.CategoriaID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, id int64, up Update) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE productos SET
			nombre       = COALESCE($2, nombre),
			descripcion  = COALESCE($3, descripcion),
			estado       = COALESCE($4, estado),
			tarifa_renta = COALESCE($5, tarifa_renta),
			imagen       = COALESCE($6, imagen),
			stock        = COALESCE($7, stock),
			usuario_id   = COALESCE($8, usuario_id),
			categoria_id = COALESCE($9, categoria_id)
		WHERE producto_id = $1`,
		id, up.Nombre, up.Descripcion, up.Estado, up.TarifaRenta, up.Imagen, up.Stock, up.UsuarioID, up.CategoriaID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM productos WHERE producto_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
