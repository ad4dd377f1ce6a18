// File: skischool/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skischool/config"
	"skischool/cron"
	"skischool/database"
	"skischool/database/repository"
	"skischool/handlers"
	"skischool/middleware"
	"skischool/routes"
	"skischool/services/schedule"
	"skischool/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitRedis()

	hours, err := schedule.ParseHours(config.AppConfig.SchoolOpeningTime, config.AppConfig.SchoolClosingTime)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid school hours: %v", err)
	}

	// repositories.
	commitments := repository.NewMongoCommitmentRepo()
	monitors := repository.NewMongoMonitorRepo()
	if err := commitments.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure commitment indexes: %v", err)
	}
	if err := monitors.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure monitor indexes: %v", err)
	}

	// task queue.
	queueOpts := utils.QueueRedisOpt()
	taskClient := asynq.NewClient(queueOpts)
	defer taskClient.Close()

	// services.
	scheduleService := schedule.NewDefaultScheduleService(
		commitments,
		monitors,
		&schedule.RedisLocker{Client: utils.GetLockClient()},
		taskClient,
		hours,
		config.AppConfig.AssignmentLockTTL,
		logger,
	)
	worker := cron.InitRevalidateWorker(queueOpts, scheduleService, logger)

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	utils.StartHealthMonitor(bgCtx, 60*time.Second, utils.GetLockClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(bgCtx, config.AppConfig.MaxRequestsPerMin, logger))

	scheduleHandler := handlers.NewScheduleHandler(scheduleService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CheckAvailabilityHandler: scheduleHandler.CheckAvailabilityHandler,
		SearchSlotHandler:        scheduleHandler.SearchSlotHandler,
		EligibleMonitorsHandler:  scheduleHandler.EligibleMonitorsHandler,
		AssignMonitorHandler:     scheduleHandler.AssignMonitorHandler,
		CheckAssignmentHandler:   scheduleHandler.CheckAssignmentHandler,
		DrillNwdHandler:          scheduleHandler.DrillNwdHandler,
		RevalidateHandler:        scheduleHandler.RevalidateHandler,
		HealthHandler:            handlers.HealthHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
