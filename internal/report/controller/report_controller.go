package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"couriertrack/internal/commons"
	"couriertrack/internal/domain"
)

type ReportService interface {
	CourierDetails(ctx context.Context) ([]domain.CourierDetail, error)
	DeliveredCustomers(ctx context.Context) ([]domain.DeliveredCustomer, error)
	StatusSummary(ctx context.Context) ([]domain.StatusSummary, error)
	AdminPerformance(ctx context.Context) ([]domain.AdminPerformance, error)
	CustomerActivity(ctx context.Context) ([]domain.CustomerActivity, error)
	Overview(ctx context.Context) (*domain.Overview, error)
}

type ReportController struct {
	service ReportService
	logger  *zap.Logger
}

func NewReportController(service ReportService, logger *zap.Logger) *ReportController {
	return &ReportController{
		service: service,
		logger:  logger,
	}
}

func (c *ReportController) Routes(r chi.Router) {
	r.Get("/couriers", listHandler(c, "Courier details", c.service.CourierDetails))
	r.Get("/delivered-customers", listHandler(c, "Customers with at least one delivered courier", c.service.DeliveredCustomers))
	r.Get("/status-summary", listHandler(c, "Couriers grouped by status", c.service.StatusSummary))
	r.Get("/admin-performance", listHandler(c, "Admin performance", c.service.AdminPerformance))
	r.Get("/customer-activity", listHandler(c, "Customer activity", c.service.CustomerActivity))
	r.Get("/overview", c.Overview)
}

func (c *ReportController) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := c.service.Overview(r.Context())
	if err != nil {
		commons.WriteError(w, commons.TraceID(r), err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, "Overview", overview, c.logger)
}

func listHandler[T any](c *ReportController, message string, fetch func(ctx context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := fetch(r.Context())
		if err != nil {
			commons.WriteError(w, commons.TraceID(r), err, c.logger)
			return
		}

		commons.WriteList(w, message, len(rows), rows, c.logger)
	}
}
