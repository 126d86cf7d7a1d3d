package rentarepo

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Aurosonic7/RentaProductoServer/model"
	productorentarepo "github.com/Aurosonic7/RentaProductoServer/repository/productorenta"
	usuariorepo "github.com/Aurosonic7/RentaProductoServer/repository/usuario"
	"github.com/Aurosonic7/RentaProductoServer/util/database"
)

// Gated behind INTEGRATION=1: spins up a throwaway postgres container.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if os.Getenv("INTEGRATION") != "1" {
		t.Skip("set INTEGRATION=1 to run container-backed tests")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
	db, err := database.New(ctx, dsn, database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return db
}

func seedRenta(t *testing.T, db *sql.DB) (rentaID, productoID int64) {
	t.Helper()
	ctx := context.Background()

	ur := usuariorepo.New(db)
	u := &model.Usuario{Nombre: "Ana", ApellidoPat: "García", Email: "ana@example.com", PasswordHash: "x"}
	require.NoError(t, ur.Create(ctx, u))

	var categoriaID int64
	require.NoError(t, db.QueryRowContext(ctx, `
		INSERT INTO categorias (nombre) VALUES ('Herramientas') RETURNING categoria_id`).Scan(&categoriaID))

	require.NoError(t, db.QueryRowContext(ctx, `
		INSERT INTO productos (nombre, estado, tarifa_renta, fecha_adquisicion, stock, usuario_id, categoria_id)
		VALUES ('Taladro', 'disponible', 50.00, now(), 5, $1, $2)
		RETURNING producto_id`, u.ID, categoriaID).Scan(&productoID))

	rr := New(db)
	inicio := time.Now().UTC().Truncate(time.Second)
	re := &model.Renta{
		UsuarioID:       u.ID,
		FechaInicio:     inicio,
		FechaFin:        inicio.AddDate(0, 0, 7),
		FechaDevolucion: inicio.AddDate(0, 0, 8),
		Estado:          model.RentaActiva,
		Total:           decimal.NewFromInt(350),
	}
	require.NoError(t, rr.Create(ctx, re))
	return re.ID, productoID
}

func stockOf(t *testing.T, db *sql.DB, productoID int64) int {
	t.Helper()
	var stock int
	require.NoError(t, db.QueryRow(`SELECT stock FROM productos WHERE producto_id = $1`, productoID).Scan(&stock))
	return stock
}

func TestReservaYFinalizacion(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	rentaID, productoID := seedRenta(t, db)
	rr := New(db)
	prr := productorentarepo.New(db)

	// Reserve 3 units inside a tx.
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	stock, estado, err := prr.ProductoForUpdate(ctx, tx, productoID)
	require.NoError(t, err)
	require.Equal(t, 5, stock)
	require.Equal(t, model.ProductoDisponible, estado)
	require.NoError(t, prr.DecrementStock(ctx, tx, productoID, 3))
	_, err = prr.Insert(ctx, tx, rentaID, productoID, 3)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Equal(t, 2, stockOf(t, db, productoID))

	// Finalizing returns the reserved quantity and flips the estado.
	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	got, err := rr.EstadoForUpdate(ctx, tx, rentaID)
	require.NoError(t, err)
	require.Equal(t, model.RentaActiva, got)
	require.NoError(t, rr.RestoreStock(ctx, tx, rentaID))
	require.NoError(t, rr.SetEstado(ctx, tx, rentaID, model.RentaFinalizada))
	require.NoError(t, tx.Commit())

	require.Equal(t, 5, stockOf(t, db, productoID))

	re, err := rr.ByID(ctx, rentaID)
	require.NoError(t, err)
	require.Equal(t, model.RentaFinalizada, re.Estado)
}

func TestAsociacionDuplicada(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	rentaID, productoID := seedRenta(t, db)
	prr := productorentarepo.New(db)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = prr.Insert(ctx, tx, rentaID, productoID, 1)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = prr.Insert(ctx, tx, rentaID, productoID, 2)
	require.Error(t, err)
	_ = tx.Rollback()
}

func TestRemoverDevuelveCantidad(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	rentaID, productoID := seedRenta(t, db)
	prr := productorentarepo.New(db)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, prr.DecrementStock(ctx, tx, productoID, 2))
	_, err = prr.Insert(ctx, tx, rentaID, productoID, 2)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	cantidad, err := prr.DeleteReturningCantidad(ctx, tx, rentaID, productoID)
	require.NoError(t, err)
	require.Equal(t, 2, cantidad)
	require.NoError(t, prr.IncrementStock(ctx, tx, productoID, cantidad))
	require.NoError(t, tx.Commit())

	require.Equal(t, 5, stockOf(t, db, productoID))
}
