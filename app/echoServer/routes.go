package echoServer

import (
	"github.com/Macsarunrat/pink-rental/app/echoServer/controller/accessory"
	"github.com/Macsarunrat/pink-rental/app/echoServer/controller/auth"
	"github.com/Macsarunrat/pink-rental/app/echoServer/controller/customer"
	"github.com/Macsarunrat/pink-rental/app/echoServer/controller/dress"
	"github.com/Macsarunrat/pink-rental/app/echoServer/controller/portal"
	"github.com/Macsarunrat/pink-rental/app/echoServer/controller/rental"
	"github.com/Macsarunrat/pink-rental/app/echoServer/controller/report"
	portalsvc "github.com/Macsarunrat/pink-rental/service/portal"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Customer  *customer.Controller
	Dress     *dress.Controller
	Accessory *accessory.Controller
	Rental    *rental.Controller
	Report    *report.Controller
	Portal    *portal.Controller

	PortalSessions portalsvc.Service
	JWTSecret      string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Staff
	staff := e.Group("/v1")
	staff.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	staff.Use(StaffID(c.JWTSecret))

	// Customers
	staff.GET("/customers", c.Customer.List)
	staff.POST("/customers", c.Customer.Create)
	staff.GET("/customers/:id/history", c.Customer.History)
	staff.DELETE("/customers/:id", c.Customer.Delete)

	// Dresses
	staff.GET("/dresses", c.Dress.List)
	staff.POST("/dresses", c.Dress.Create)
	staff.GET("/dresses/:id", c.Dress.Detail)
	staff.PUT("/dresses/:id", c.Dress.Update)
	staff.DELETE("/dresses/:id", c.Dress.Delete)
	staff.POST("/dresses/:id/image", c.Dress.UploadImage)

	// Accessories
	staff.GET("/accessories", c.Accessory.List)
	staff.POST("/accessories", c.Accessory.Create)
	staff.DELETE("/accessories/:id", c.Accessory.Delete)
	staff.POST("/accessories/:id/image", c.Accessory.UploadImage)

	// Rentals
	staff.POST("/rentals", c.Rental.Create)
	staff.GET("/rentals/conflicts", c.Rental.Conflicts)
	staff.GET("/rentals/:id", c.Rental.Detail)
	staff.PATCH("/rentals/:id/status", c.Rental.UpdateStatus)
	staff.DELETE("/rentals/:id", c.Rental.Delete)

	// Dashboard
	staff.GET("/dashboard", c.Report.Dashboard)

	// Customer portal
	pp := e.Group("/portal")
	pp.POST("/login", c.Portal.Login)

	pa := e.Group("/portal")
	pa.Use(PortalAuth(c.PortalSessions))
	pa.POST("/logout", c.Portal.Logout)
	pa.GET("/rentals", c.Portal.MyRentals)
	pa.GET("/rentals/:id/accessories", c.Portal.AccessoryOptions)
	pa.PUT("/rentals/:id/accessories", c.Portal.SelectAccessories)
}
