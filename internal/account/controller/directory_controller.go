package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"couriertrack/internal/account/service"
	"couriertrack/internal/commons"
	"couriertrack/internal/domain"
	"couriertrack/internal/dto"
)

type DirectoryService interface {
	CreateUser(ctx context.Context, in service.CreateUserInput) (*domain.User, error)
	CreateAdmin(ctx context.Context, in service.CreateAdminInput) (*domain.Admin, error)
	GetUser(ctx context.Context, id uint) (*domain.User, error)
	GetAdmin(ctx context.Context, id uint) (*domain.Admin, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
}

type DirectoryController struct {
	service DirectoryService
	logger  *zap.Logger
}

func NewDirectoryController(service DirectoryService, logger *zap.Logger) *DirectoryController {
	return &DirectoryController{
		service: service,
		logger:  logger,
	}
}

func (c *DirectoryController) UserRoutes(r chi.Router) {
	r.Post("/", c.CreateUser)
	r.Get("/", c.ListUsers)
	r.Get("/{id}", c.GetUser)
}

func (c *DirectoryController) AdminRoutes(r chi.Router) {
	r.Post("/", c.CreateAdmin)
	r.Get("/", c.ListAdmins)
	r.Get("/{id}", c.GetAdmin)
}

func (c *DirectoryController) CreateUser(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	var req dto.CreateUserRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	user, err := c.service.CreateUser(r.Context(), service.CreateUserInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusCreated, "User created successfully", dto.NewUserResponse(*user), c.logger)
}

func (c *DirectoryController) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	var req dto.CreateAdminRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	admin, err := c.service.CreateAdmin(r.Context(), service.CreateAdminInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  req.Role,
	})
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusCreated, "Admin created successfully", dto.NewAdminResponse(*admin), c.logger)
}

func (c *DirectoryController) GetUser(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	user, err := c.service.GetUser(r.Context(), id)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, "", dto.NewUserResponse(*user), c.logger)
}

func (c *DirectoryController) GetAdmin(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	admin, err := c.service.GetAdmin(r.Context(), id)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, "", dto.NewAdminResponse(*admin), c.logger)
}

func (c *DirectoryController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.service.ListUsers(r.Context())
	if err != nil {
		commons.WriteError(w, commons.TraceID(r), err, c.logger)
		return
	}

	commons.WriteList(w, "", len(users), dto.NewUserResponses(users), c.logger)
}

func (c *DirectoryController) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := c.service.ListAdmins(r.Context())
	if err != nil {
		commons.WriteError(w, commons.TraceID(r), err, c.logger)
		return
	}

	commons.WriteList(w, "", len(admins), dto.NewAdminResponses(admins), c.logger)
}
