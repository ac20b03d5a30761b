package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/viant/afs"

	mwecho "github.com/labstack/echo/v4/middleware"
	mwsvc "winsbygroup.com/appmachineid/internal/middleware"

	"winsbygroup.com/appmachineid/internal/application"
	"winsbygroup.com/appmachineid/internal/appspecific"
	"winsbygroup.com/appmachineid/internal/backup"
	"winsbygroup.com/appmachineid/internal/config"
	"winsbygroup.com/appmachineid/internal/demodata"
	"winsbygroup.com/appmachineid/internal/source"
	"winsbygroup.com/appmachineid/internal/sqlite"

	adminhttp "winsbygroup.com/appmachineid/internal/http/admin"
	clienthttp "winsbygroup.com/appmachineid/internal/http/client"
)

type Server struct {
	Echo *echo.Echo
	HTTP *http.Server
	DB   *sqlx.DB
}

func Build(cfg *config.Config) (*Server, error) {
	if cfg.AdminAPIKey == "" {
		return nil, errors.New("ADMIN_API_KEY environment variable (or admin_api_key setting) is required")
	}

	//
	// Machine id source
	//
	reader := source.New(afs.New(), cfg.MachineIDPaths...)
	if p, err := reader.Locate(context.Background()); err != nil {
		// not fatal: lookups report the error until the file appears
		log.Printf("Machine id not available: %v", err)
	} else {
		log.Printf("Using machine id from '%s'", p)
	}

	//
	// Database
	//
	_, statErr := os.Stat(cfg.DBPath)
	isNewDB := os.IsNotExist(statErr)
	if isNewDB {
		log.Printf("Creating database '%s' (from %s setting)", cfg.DBPath, cfg.DBPathSource)
	} else {
		log.Printf("Opening database '%s' (from %s setting)", cfg.DBPath, cfg.DBPathSource)
	}
	db, err := sqlx.Connect("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, err
	}

	if err := sqlite.RunMigrations(db.DB); err != nil {
		db.Close()
		return nil, err
	}

	if isNewDB && cfg.Demo {
		log.Printf("Loading demo applications")
		if err := demodata.Load(context.Background(), db); err != nil {
			db.Close()
			return nil, err
		}
	}

	//
	// Domain services
	//
	applicationSvc := application.NewService(db)
	appSpecificSvc := appspecific.NewService(reader, applicationSvc)

	//
	// Handlers
	//
	clientHandler := clienthttp.NewHandler(appSpecificSvc)
	adminHandler := adminhttp.NewHandler(applicationSvc, backup.NewService(db, cfg.DBPath))

	//
	// Echo
	//
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(mwecho.Logger())
	e.Use(mwecho.Recover())
	e.Use(mwsvc.Version())

	// Health endpoints
	e.GET("/livez", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/readyz", func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.PingContext(ctx); err != nil {
			return c.String(http.StatusServiceUnavailable, "DB not ready")
		}
		if _, err := reader.Locate(ctx); err != nil {
			return c.String(http.StatusServiceUnavailable, "Machine id not available")
		}
		return c.String(http.StatusOK, "Ready")
	})

	// Client API
	clientGroup := e.Group("/api/v1")
	clienthttp.RegisterRoutes(clientGroup, clientHandler)

	// Admin API
	adminGroup := e.Group("/api/admin")
	adminGroup.Use(mwsvc.AdminAPIKeyAuth(cfg.AdminAPIKey))
	adminhttp.RegisterRoutes(adminGroup, adminHandler)

	//
	// HTTP server
	//
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		Echo: e,
		HTTP: srv,
		DB:   db,
	}, nil
}
