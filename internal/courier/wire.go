package courier

import (
	"database/sql"

	"go.uber.org/zap"

	"couriertrack/internal/config"
	"couriertrack/internal/courier/controller"
	"couriertrack/internal/courier/ports"
	"couriertrack/internal/courier/repository"
	"couriertrack/internal/courier/service"
)

func NewModule(db *sql.DB, cfg *config.Config, publisher ports.EventPublisher, logger *zap.Logger) *controller.CourierController {
	store := repository.NewMySQLStore(db, cfg.Courier.TxTimeout, logger)

	svc := service.NewLifecycleService(
		store,
		publisher,
		logger,
		cfg.Courier.DeliveredComment,
	)

	return controller.NewCourierController(svc, logger)
}
