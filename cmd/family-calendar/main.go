package main

import (
	"context"
	"family-calendar-backend/cmd/family-calendar/apis"
	"family-calendar-backend/cmd/family-calendar/model"
	"family-calendar-backend/cmd/family-calendar/repository"
	"family-calendar-backend/cmd/family-calendar/store"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type EnvCfg struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" required:"true"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	Listen     string `envconfig:"LISTEN" default:":8080"`
	Timezone   string `envconfig:"TZ" default:"Europe/Rome"`
	PinCode    string `envconfig:"PIN_CODE" required:"true"`
	JWTSecret  string `envconfig:"JWT_SECRET" required:"true"`
}

func main() {

	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	var cfg EnvCfg
	err := envconfig.Process("FAMILYCAL", &cfg)
	if err != nil {
		panic(err)
	}

	// All date math runs in one deliberate local zone.
	err = os.Setenv("TZ", cfg.Timezone)
	if err != nil {
		panic(err)
	}

	db, err := gorm.Open(
		postgres.Open(
			fmt.Sprintf(
				"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
				cfg.DBHost,
				cfg.DBPort,
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBName,
				cfg.Timezone,
			),
		),
	)

	if err != nil {
		panic(err)
	}

	err = db.AutoMigrate(&model.Event{})
	if err != nil {
		panic(err)
	}

	e := echo.New()

	eventRepo := repository.NewEventRepo(db)
	eventStore := store.New(eventRepo)

	// A failed initial load leaves the collection empty until the next
	// /events request retries it.
	if err := eventStore.Load(context.Background()); err != nil {
		e.Logger.Errorf("initial load: %v", err)
	}

	rootg := e.Group("")
	v1g := rootg.Group("/api/v1", apis.AuthMiddleware(cfg.JWTSecret))

	apis.
		NewHealthCheckAPI(db).
		Setup(rootg)

	sessionAPI := apis.NewSessionAPI(cfg.PinCode, cfg.JWTSecret)
	sessionAPI.Setup(rootg)
	sessionAPI.SetupAuthorized(v1g)

	apis.
		NewEventAPI(eventStore).
		Setup(v1g)

	apis.
		NewExportAPI(eventStore).
		Setup(v1g)

	e.Start(cfg.Listen)

}
