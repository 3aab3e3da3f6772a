package main

import (
	"fmt"
	"log/slog"
	"os"

	"lms/cmd"
	httpadapter "lms/internal/adapters/in/http"
	"lms/internal/adapters/out/kafka"
	"lms/internal/adapters/out/postgres"
	"lms/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := mustConnectDB(configs)

	notifier := kafka.NewMilestoneNotifier(configs.KafkaBrokers, configs.KafkaMilestoneTopic)
	defer notifier.Close()

	app := cmd.NewCompositionRoot(configs, db, notifier)

	jobManager := jobs.NewJobManager(
		app.CreateSweepOverdueInvoicesCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		KafkaBrokers:        goDotEnvVariable("KAFKA_BROKERS"),
		KafkaMilestoneTopic: goDotEnvVariable("KAFKA_MILESTONE_TOPIC"),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey,
	// which the repositories rely on.
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	return db
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateUpdateOrderBoxesCommandHandler(),
		app.CreateProcessScanCommandHandler(),
		app.CreateBatchProcessCommandHandler(),
		app.CreateConsolidateCommandHandler(),
		app.CreateIssueInvoiceCommandHandler(),
		app.CreateRecordPaymentCommandHandler(),
		app.CreateGetTrackingQueryHandler(),
		app.CreateGetInventoryQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
