package account

import (
	"database/sql"

	"go.uber.org/zap"

	"couriertrack/internal/account/controller"
	"couriertrack/internal/account/repository"
	"couriertrack/internal/account/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.DirectoryController {
	userRepo := repository.NewMySQLUserRepository(db)
	adminRepo := repository.NewMySQLAdminRepository(db)

	svc := service.NewDirectoryService(userRepo, adminRepo, logger)
	return controller.NewDirectoryController(svc, logger)
}
