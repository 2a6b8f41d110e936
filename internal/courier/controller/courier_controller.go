package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"couriertrack/internal/commons"
	"couriertrack/internal/courier/service"
	"couriertrack/internal/domain"
	"couriertrack/internal/dto"
)

type LifecycleService interface {
	CreateCourier(ctx context.Context, in service.CreateCourierInput) (*domain.Courier, error)
	TransitionStatus(ctx context.Context, courierID uint, newStatus string, changedByAdminEmail string) (*domain.Courier, error)
	GetStatus(ctx context.Context, courierID uint) (domain.Status, error)
	GetCourier(ctx context.Context, courierID uint) (*domain.Courier, error)
	ListCouriers(ctx context.Context) ([]domain.Courier, error)
	GetLogs(ctx context.Context, courierID uint) (*domain.CourierLogs, error)
	DeleteCourier(ctx context.Context, courierID uint) (*domain.DeletedSummary, error)
	AddComment(ctx context.Context, courierID, userID uint, text string) (*domain.Comment, error)
	ListComments(ctx context.Context, courierID uint) ([]domain.Comment, error)
	TrackByBillAndName(ctx context.Context, billNumber, namePattern string) (*domain.Courier, error)
	CountCustomerCouriers(ctx context.Context, customerID uint) (int, error)
}

type CourierController struct {
	service LifecycleService
	logger  *zap.Logger
}

func NewCourierController(service LifecycleService, logger *zap.Logger) *CourierController {
	return &CourierController{
		service: service,
		logger:  logger,
	}
}

// Routes mounts the courier endpoints; /track is registered before /{id}.
func (c *CourierController) Routes(r chi.Router) {
	r.Post("/", c.CreateCourier)
	r.Get("/", c.ListCouriers)
	r.Get("/track", c.TrackCourier)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", c.GetCourier)
		r.Delete("/", c.DeleteCourier)
		r.Get("/status", c.GetStatus)
		r.Put("/status", c.UpdateStatus)
		r.Get("/logs", c.GetLogs)
		r.Get("/comments", c.ListComments)
		r.Post("/comments", c.AddComment)
	})
}

func (c *CourierController) CreateCourier(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	var req dto.CreateCourierRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		c.logger.Warn("invalid JSON body", zap.String("traceId", traceID), zap.Error(err))
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	courier, err := c.service.CreateCourier(r.Context(), service.CreateCourierInput{
		CustomerID:      req.CustomerID,
		AdminID:         req.AdminID,
		BillNumber:      req.BillNumber,
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusCreated, "Courier created successfully", dto.NewCourierResponse(*courier), c.logger)
}

func (c *CourierController) ListCouriers(w http.ResponseWriter, r *http.Request) {
	couriers, err := c.service.ListCouriers(r.Context())
	if err != nil {
		commons.WriteError(w, commons.TraceID(r), err, c.logger)
		return
	}

	commons.WriteList(w, "", len(couriers), dto.NewCourierResponses(couriers), c.logger)
}

func (c *CourierController) TrackCourier(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	courier, err := c.service.TrackByBillAndName(r.Context(), query.Get("billNumber"), query.Get("name"))
	if err != nil {
		commons.WriteError(w, commons.TraceID(r), err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, "", dto.NewCourierResponse(*courier), c.logger)
}

func (c *CourierController) GetCourier(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	courier, err := c.service.GetCourier(r.Context(), id)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, "", dto.NewCourierResponse(*courier), c.logger)
}

func (c *CourierController) GetStatus(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	status, err := c.service.GetStatus(r.Context(), id)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, "", dto.StatusResponse{CourierID: id, Status: string(status)}, c.logger)
}

func (c *CourierController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	var req dto.UpdateStatusRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		commons.WriteError(w, traceID, err, logger)
		return
	}

	courier, err := c.service.TransitionStatus(r.Context(), id, req.NewStatus, req.ChangedByAdminEmail)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, "Courier status updated successfully", dto.NewCourierResponse(*courier), logger)
}

func (c *CourierController) GetLogs(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	logs, err := c.service.GetLogs(r.Context(), id)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, "", dto.NewLogsResponse(*logs), c.logger)
}

func (c *CourierController) DeleteCourier(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	summary, err := c.service.DeleteCourier(r.Context(), id)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, "Courier deleted successfully", dto.NewDeletedCourierResponse(*summary), c.logger)
}

func (c *CourierController) AddComment(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	var req dto.AddCommentRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	comment, err := c.service.AddComment(r.Context(), id, req.UserID, req.CommentText)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusCreated, "Comment added successfully", dto.NewCommentResponse(*comment), c.logger)
}

func (c *CourierController) ListComments(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	comments, err := c.service.ListComments(r.Context(), id)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteList(w, "", len(comments), dto.NewCommentResponses(comments), c.logger)
}

// CountCustomerCouriers serves /users/{id}/couriers/count.
func (c *CourierController) CountCustomerCouriers(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	count, err := c.service.CountCustomerCouriers(r.Context(), id)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, "", dto.CourierCountResponse{CustomerID: id, CourierCount: count}, c.logger)
}
