// Package main renta de productos API.
//
// @title           RentaProducto API
// @version         1.0
// @description     Marketplace de renta de productos (usuarios, categorías, productos, rentas, pagos).
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Aurosonic7/RentaProductoServer/app/echoServer"
	authctrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/auth"
	categoriactrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/categoria"
	metodopagoctrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/metodopago"
	productoctrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/producto"
	productorentactrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/productorenta"
	rentactrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/renta"
	usuarioctrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/usuario"
	"github.com/Aurosonic7/RentaProductoServer/app/echoServer/validation"
	"github.com/Aurosonic7/RentaProductoServer/config"
	categoriarepo "github.com/Aurosonic7/RentaProductoServer/repository/categoria"
	dropboxrepo "github.com/Aurosonic7/RentaProductoServer/repository/dropbox"
	metodopagorepo "github.com/Aurosonic7/RentaProductoServer/repository/metodopago"
	productorepo "github.com/Aurosonic7/RentaProductoServer/repository/producto"
	productorentarepo "github.com/Aurosonic7/RentaProductoServer/repository/productorenta"
	rentarepo "github.com/Aurosonic7/RentaProductoServer/repository/renta"
	usuariorepo "github.com/Aurosonic7/RentaProductoServer/repository/usuario"
	authsvc "github.com/Aurosonic7/RentaProductoServer/service/auth"
	categoriasvc "github.com/Aurosonic7/RentaProductoServer/service/categoria"
	metodopagosvc "github.com/Aurosonic7/RentaProductoServer/service/metodopago"
	productosvc "github.com/Aurosonic7/RentaProductoServer/service/producto"
	productorentasvc "github.com/Aurosonic7/RentaProductoServer/service/productorenta"
	rentasvc "github.com/Aurosonic7/RentaProductoServer/service/renta"
	usuariosvc "github.com/Aurosonic7/RentaProductoServer/service/usuario"
	"github.com/Aurosonic7/RentaProductoServer/util/database"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	db, err := database.New(ctx, cfg.DatabaseURL, database.Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := usuariorepo.New(db)
	cr := categoriarepo.New(db)
	pr := productorepo.New(db)
	rr := rentarepo.New(db)
	prr := productorentarepo.New(db)
	mr := metodopagorepo.New(db)
	files := dropboxrepo.NewHTTP(cfg.DropboxAccessToken)

	// services
	as := authsvc.New(ur, cfg.JWTSecret, cfg.JWTExpiresHours)
	us := usuariosvc.New(ur)
	cs := categoriasvc.New(cr)
	ps := productosvc.New(pr)
	rs := rentasvc.New(db, rr)
	prs := productorentasvc.New(db, prr)
	ms := metodopagosvc.New(mr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	usuarioC := &usuarioctrl.Controller{Svc: us, Files: files, V: v, Log: log}
	categoriaC := &categoriactrl.Controller{Svc: cs, V: v, Log: log}
	productoC := &productoctrl.Controller{Svc: ps, Files: files, V: v, Log: log}
	rentaC := &rentactrl.Controller{Svc: rs, V: v, Log: log}
	productoRentaC := &productorentactrl.Controller{Svc: prs, Files: files, V: v, Log: log}
	metodoPagoC := &metodopagoctrl.Controller{Svc: ms, V: v, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e, log)
	e.Validator = validation.New()

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Bienvenido al servidor de renta de productos"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:          authC,
		Usuario:       usuarioC,
		Categoria:     categoriaC,
		Producto:      productoC,
		Renta:         rentaC,
		ProductoRenta: productoRentaC,
		MetodoPago:    metodoPagoC,

		JWTSecret: cfg.JWTSecret,
	})

	if cfg.CertFile != "" && cfg.KeyFile != "" {
		log.Info("starting https server", "port", cfg.HTTPSPort)
		e.Logger.Fatal(e.StartTLS(":"+cfg.HTTPSPort, cfg.CertFile, cfg.KeyFile))
		return
	}
	log.Info("starting http server", "port", cfg.HTTPPort)
	e.Logger.Fatal(e.Start(":" + cfg.HTTPPort))
}
