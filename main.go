// Package main pink-rental API.
//
// @title           Pink Rental API
// @version         1.0
// @description     Dress rental back office and customer portal.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Macsarunrat/pink-rental/app/echoServer"
	accessoryctrl "github.com/Macsarunrat/pink-rental/app/echoServer/controller/accessory"
	authctrl "github.com/Macsarunrat/pink-rental/app/echoServer/controller/auth"
	customerctrl "github.com/Macsarunrat/pink-rental/app/echoServer/controller/customer"
	dressctrl "github.com/Macsarunrat/pink-rental/app/echoServer/controller/dress"
	portalctrl "github.com/Macsarunrat/pink-rental/app/echoServer/controller/portal"
	rentalctrl "github.com/Macsarunrat/pink-rental/app/echoServer/controller/rental"
	reportctrl "github.com/Macsarunrat/pink-rental/app/echoServer/controller/report"
	"github.com/Macsarunrat/pink-rental/app/echoServer/validation"
	"github.com/Macsarunrat/pink-rental/config"
	"github.com/Macsarunrat/pink-rental/migrations"
	accessoryrepo "github.com/Macsarunrat/pink-rental/repository/accessory"
	authrepo "github.com/Macsarunrat/pink-rental/repository/auth"
	customerrepo "github.com/Macsarunrat/pink-rental/repository/customer"
	dressrepo "github.com/Macsarunrat/pink-rental/repository/dress"
	portalrepo "github.com/Macsarunrat/pink-rental/repository/portal"
	rentalrepo "github.com/Macsarunrat/pink-rental/repository/rental"
	reportrepo "github.com/Macsarunrat/pink-rental/repository/report"
	accessorysvc "github.com/Macsarunrat/pink-rental/service/accessory"
	authsvc "github.com/Macsarunrat/pink-rental/service/auth"
	customersvc "github.com/Macsarunrat/pink-rental/service/customer"
	dresssvc "github.com/Macsarunrat/pink-rental/service/dress"
	portalsvc "github.com/Macsarunrat/pink-rental/service/portal"
	rentalsvc "github.com/Macsarunrat/pink-rental/service/rental"
	reportsvc "github.com/Macsarunrat/pink-rental/service/report"
	"github.com/Macsarunrat/pink-rental/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := migrations.Apply(ctx, db); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Error("upload dir", "err", err)
		os.Exit(1)
	}

	// repos
	ar := authrepo.New(db)
	cr := customerrepo.New(db)
	dr := dressrepo.New(db)
	acr := accessoryrepo.New(db)
	rr := rentalrepo.New(db)
	pr := portalrepo.New(db)
	repr := reportrepo.New(db)

	// services
	as := authsvc.New(ar, cfg.JWTSecret)
	rs := rentalsvc.New(rr)
	cs := customersvc.New(cr, rs)
	ds := dresssvc.New(dr)
	acs := accessorysvc.New(acr)
	ps := portalsvc.New(pr, rs, acs, nil)
	reps := reportsvc.New(repr, ds, nil)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	customerC := &customerctrl.Controller{Svc: cs, V: v, Log: log}
	dressC := &dressctrl.Controller{Svc: ds, V: v, Log: log, UploadDir: cfg.UploadDir}
	accessoryC := &accessoryctrl.Controller{Svc: acs, V: v, Log: log, UploadDir: cfg.UploadDir}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}
	reportC := &reportctrl.Controller{Svc: reps, Log: log}
	portalC := &portalctrl.Controller{Svc: ps, Rentals: rs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.UploadDir)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Customer:  customerC,
		Dress:     dressC,
		Accessory: accessoryC,
		Rental:    rentalC,
		Report:    reportC,
		Portal:    portalC,

		PortalSessions: ps,
		JWTSecret:      cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
