package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"hr_payroll/config"
	"hr_payroll/handlers"
	"hr_payroll/repository"
	"hr_payroll/services"
	"hr_payroll/utils"
)

func initServices() error {
	cfg := config.AppConfig

	db, err := repository.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	repo := repository.New(db)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	lateAfter, err := cfg.LateThreshold()
	if err != nil {
		return err
	}

	codec, err := services.NewCodec(cfg.EncryptionMode, cfg.EncryptionSecret)
	if err != nil {
		return err
	}

	attendance := services.NewAttendanceService(repo, repo, services.AttendancePolicy{
		Location:       loc,
		LateAfter:      lateAfter,
		FullDayMinutes: cfg.FullDayMinutes,
	})
	payroll := services.NewPayrollService(repo, repo, repo, codec)
	handlers.InitHandlers(attendance, payroll)

	return nil
}

func main() {
	config.LoadConfig()
	if err := utils.InitLogger(config.AppConfig.Environment); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer utils.Logger.Sync()

	if err := initServices(); err != nil {
		utils.Logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	app := fiber.New()
	handlers.SetupRoutes(app)

	utils.Logger.Info("Starting server", zap.String("port", config.AppConfig.Port))
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		utils.Logger.Fatal("Server stopped", zap.Error(err))
	}
}
