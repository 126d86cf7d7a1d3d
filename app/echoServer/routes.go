package echoServer

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	authctrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/auth"
	categoriactrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/categoria"
	metodopagoctrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/metodopago"
	productoctrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/producto"
	productorentactrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/productorenta"
	rentactrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/renta"
	usuarioctrl "github.com/Aurosonic7/RentaProductoServer/app/echoServer/controller/usuario"
	jwtutil "github.com/Aurosonic7/RentaProductoServer/util/jwt"
)

type C struct {
	Auth          *authctrl.Controller
	Usuario       *usuarioctrl.Controller
	Categoria     *categoriactrl.Controller
	Producto      *productoctrl.Controller
	Renta         *rentactrl.Controller
	ProductoRenta *productorentactrl.Controller
	MetodoPago    *metodopagoctrl.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.POST("/auth/register", c.Auth.Register)
	e.POST("/auth/login", c.Auth.Login)

	// Protected. A request with no token at all gets 403, a request with a
	// token that fails verification gets 401.
	prot := e.Group("")
	prot.Use(echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ,header:x-access-token",
		ParseTokenFunc: func(ctx echo.Context, auth string) (interface{}, error) {
			return jwtutil.ParseAuth(auth, c.JWTSecret)
		},
		ErrorHandler: func(ctx echo.Context, err error) error {
			h := ctx.Request().Header
			if h.Get(echo.HeaderAuthorization) == "" && h.Get("x-access-token") == "" {
				return ctx.JSON(http.StatusForbidden, echo.Map{"auth": false, "message": "No token provided."})
			}
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"auth": false, "message": "Failed to authenticate token."})
		},
	}))

	prot.GET("/perfil", c.Usuario.Perfil)

	prot.POST("/usuarios", c.Usuario.Create)
	prot.GET("/usuarios", c.Usuario.List)
	prot.GET("/usuarios/:id", c.Usuario.Detail)
	prot.PUT("/usuarios/:id", c.Usuario.Update)
	prot.DELETE("/usuarios/:id", c.Usuario.Delete)

	prot.POST("/categorias", c.Categoria.Create)
	prot.GET("/categorias", c.Categoria.List)
	prot.GET("/categorias/:id", c.Categoria.Detail)
	prot.PUT("/categorias/:id", c.Categoria.Update)
	prot.DELETE("/categorias/:id", c.Categoria.Delete)

	prot.POST("/productos", c.Producto.Create)
	prot.GET("/productos", c.Producto.List)
	prot.GET("/productos/:id", c.Producto.Detail)
	prot.PUT("/productos/:id", c.Producto.Update)
	prot.DELETE("/productos/:id", c.Producto.Delete)

	prot.POST("/rentas", c.Renta.Create)
	prot.GET("/rentas", c.Renta.List)
	prot.GET("/rentas/:id", c.Renta.Detail)
	prot.PUT("/rentas/:id", c.Renta.UpdateEstado)
	prot.POST("/rentas/:id/finalizar", c.Renta.Finalizar)
	prot.DELETE("/rentas/:id", c.Renta.Delete)

	prot.POST("/productoxrenta", c.ProductoRenta.Agregar)
	prot.GET("/productoxrenta/:usuario_id", c.ProductoRenta.PorUsuario)
	prot.DELETE("/productoxrenta/:renta_id/:producto_id", c.ProductoRenta.Remover)

	prot.POST("/metodopago", c.MetodoPago.Create)
	prot.GET("/metodopago", c.MetodoPago.List)
	prot.GET("/metodopago/:id", c.MetodoPago.Detail)
	prot.PUT("/metodopago/:id", c.MetodoPago.Update)
	prot.DELETE("/metodopago/:id", c.MetodoPago.Delete)
}
