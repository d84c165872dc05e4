package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/SyphaxBN/PointageApp-Back/internal/config"
	appHTTP "github.com/SyphaxBN/PointageApp-Back/internal/handler/http"
	"github.com/SyphaxBN/PointageApp-Back/internal/pkg/cron"
	"github.com/SyphaxBN/PointageApp-Back/internal/pkg/database"
	"github.com/SyphaxBN/PointageApp-Back/internal/pkg/jwt"
	"github.com/SyphaxBN/PointageApp-Back/internal/repository/postgresql"
	attendanceService "github.com/SyphaxBN/PointageApp-Back/internal/service/attendance"
	"github.com/SyphaxBN/PointageApp-Back/internal/service/geofence"
	locationService "github.com/SyphaxBN/PointageApp-Back/internal/service/location"
	reportService "github.com/SyphaxBN/PointageApp-Back/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	timezone, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", cfg.App.Timezone)
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	withTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	resolver := geofence.NewResolver(locationRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, resolver, timezone, withTx)
	reportSvc := reportService.NewReportService(attendanceRepo, timezone)
	locationSvc := locationService.NewLocationService(locationRepo, withTx)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	locationHandler := appHTTP.NewLocationHandler(locationSvc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		attendanceHandler,
		reportHandler,
		locationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
