package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"freightmatch/cmd"
	freighthttp "freightmatch/internal/adapters/in/http"
	"freightmatch/internal/adapters/out/postgres/carrierrepo"
	"freightmatch/internal/adapters/out/postgres/jobrepo"
	"freightmatch/internal/adapters/out/postgres/pairrepo"
	"freightmatch/internal/adapters/out/redisnotify"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)

	redisClient, err := redisnotify.NewClient(context.Background(), configs.RedisURL)
	if err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}
	notifier := redisnotify.NewRedisNotifier(redisClient)

	app := cmd.NewCompositionRoot(configs, gormDB, notifier, logger)

	jobManager := app.CreateJobManager(configs.SweepSchedule)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		RedisURL:      goDotEnvVariable("REDIS_URL"),
		SweepSchedule: goDotEnvVariable("SWEEP_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&jobrepo.JobDTO{},
		&pairrepo.JobPairDTO{},
		&carrierrepo.CarrierAccountDTO{},
		&carrierrepo.CarrierVehicleDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := freighthttp.NewServer(
		app.CreateCreateJobCommandHandler(),
		app.CreateRequestJobCommandHandler(),
		app.CreateUpdateJobStatusCommandHandler(),
		app.CreateBuildBackhaulsCommandHandler(),
		app.CreateGetPersonalizedMatchesQueryHandler(),
		app.CreateGetJobRecommendationsQueryHandler(),
		app.CreateGetBackhaulCandidatesQueryHandler(),
		app.CreateFindBackhaulQueryHandler(),
		app.CreateGetPairedJobsQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
