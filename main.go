package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ophthalmoai/saas-backend/config"
	"github.com/ophthalmoai/saas-backend/internal/routes"
	"github.com/ophthalmoai/saas-backend/pkg/storage/mariadb"
)

func main() {
	cfg := config.LoadConfig()
	db := mariadb.Connect()

	if err := mariadb.Migrate(db); err != nil {
		logrus.Fatalf("schema migration failed: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	routes.Init(e, db)

	logrus.Infof("server listening on port %s", cfg.Port)
	logrus.Fatal(e.Start(":" + cfg.Port))
}
