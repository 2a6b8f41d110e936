package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	accountctrl "couriertrack/internal/account/controller"
	"couriertrack/internal/auth"
	"couriertrack/internal/commons"
	courierctrl "couriertrack/internal/courier/controller"
	reportctrl "couriertrack/internal/report/controller"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Controllers struct {
	Couriers  *courierctrl.CourierController
	Directory *accountctrl.DirectoryController
	Reports   *reportctrl.ReportController
	Login     *auth.LoginController
}

func NewRouter(ctrls Controllers, db Pinger, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(Observability(logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", healthHandler(db, logger))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/couriers", ctrls.Couriers.Routes)
	r.Route("/users", func(r chi.Router) {
		ctrls.Directory.UserRoutes(r)
		r.Get("/{id}/couriers/count", ctrls.Couriers.CountCustomerCouriers)
	})
	r.Route("/admins", ctrls.Directory.AdminRoutes)
	r.Route("/reports", ctrls.Reports.Routes)
	r.Post("/auth/login", ctrls.Login.Login)

	return r
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func healthHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			commons.WriteJSON(w, http.StatusServiceUnavailable, commons.Response{
				Message: "database unavailable",
				Data:    healthResponse{Status: "degraded", Database: "down"},
			}, logger)
			return
		}

		commons.WriteSuccess(w, http.StatusOK, "", healthResponse{Status: "ok", Database: "up"}, logger)
	}
}
