package categoriarepo

import (
	"context"
	"database/sql"

	"github.com/Aurosonic7/RentaProductoServer/model"
)

type Update struct {
	Nombre      *string
	Descripcion *string
}

type Repo interface {
	Create(ctx context.Context, c *model.Categoria) error
	ByID(ctx context.Context, id int64) (*model.Categoria, error)
	List(ctx context.Context) ([]model.Categoria, error)
	Update(ctx context.Context, id int64, up Update) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, c *model.Categoria) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO categorias (nombre, descripcion)
		VALUES ($1,$2)
		RETURNING categoria_id`,
		c.Nombre, c.Descripcion,
	).Scan(&c.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Categoria, error) {
	c := &model.Categoria{}
	err := r.db.QueryRowContext(ctx, `
		SELECT categoria_id, nombre, descripcion
		FROM categorias
		WHERE categoria_id = $1`,
		id,
	).Scan(&c.ID, &c.Nombre, &c.Descripcion)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repo) List(ctx context.Context) ([]model.Categoria, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT categoria_id, nombre, descripcion
		FROM categorias
		ORDER BY categoria_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Categoria
	for rows.Next() {
		var c model.Categoria
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Descripcion); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, id int64, up Update) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categorias SET
			nombre      = COALESCE($2, nombre),
			descripcion = COALESCE($3, descripcion)
		WHERE categoria_id = $1`,
		id, up.Nombre, up.Descripcion,
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM categorias WHERE categoria_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
