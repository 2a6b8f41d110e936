package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"couriertrack/internal/courier/service"
	"couriertrack/internal/domain"
	apperrors "couriertrack/internal/errors"
)

type mockLifecycleService struct {
	CreateCourierFunc         func(ctx context.Context, in service.CreateCourierInput) (*domain.Courier, error)
	TransitionStatusFunc      func(ctx context.Context, courierID uint, newStatus string, changedByAdminEmail string) (*domain.Courier, error)
	GetStatusFunc             func(ctx context.Context, courierID uint) (domain.Status, error)
	GetCourierFunc            func(ctx context.Context, courierID uint) (*domain.Courier, error)
	ListCouriersFunc          func(ctx context.Context) ([]domain.Courier, error)
	GetLogsFunc               func(ctx context.Context, courierID uint) (*domain.CourierLogs, error)
	DeleteCourierFunc         func(ctx context.Context, courierID uint) (*domain.DeletedSummary, error)
	AddCommentFunc            func(ctx context.Context, courierID, userID uint, text string) (*domain.Comment, error)
	ListCommentsFunc          func(ctx context.Context, courierID uint) ([]domain.Comment, error)
	TrackByBillAndNameFunc    func(ctx context.Context, billNumber, namePattern string) (*domain.Courier, error)
	CountCustomerCouriersFunc func(ctx context.Context, customerID uint) (int, error)
}

func (m *mockLifecycleService) CreateCourier(ctx context.Context, in service.CreateCourierInput) (*domain.Courier, error) {
	return m.CreateCourierFunc(ctx, in)
}

func (m *mockLifecycleService) TransitionStatus(ctx context.Context, courierID uint, newStatus string, changedByAdminEmail string) (*domain.Courier, error) {
	return m.TransitionStatusFunc(ctx, courierID, newStatus, changedByAdminEmail)
}

func (m *mockLifecycleService) GetStatus(ctx context.Context, courierID uint) (domain.Status, error) {
	return m.GetStatusFunc(ctx, courierID)
}

func (m *mockLifecycleService) GetCourier(ctx context.Context, courierID uint) (*domain.Courier, error) {
	return m.GetCourierFunc(ctx, courierID)
}

func (m *mockLifecycleService) ListCouriers(ctx context.Context) ([]domain.Courier, error) {
	return m.ListCouriersFunc(ctx)
}

func (m *mockLifecycleService) GetLogs(ctx context.Context, courierID uint) (*domain.CourierLogs, error) {
	return m.GetLogsFunc(ctx, courierID)
}

func (m *mockLifecycleService) DeleteCourier(ctx context.Context, courierID uint) (*domain.DeletedSummary, error) {
	return m.DeleteCourierFunc(ctx, courierID)
}

func (m *mockLifecycleService) AddComment(ctx context.Context, courierID, userID uint, text string) (*domain.Comment, error) {
	return m.AddCommentFunc(ctx, courierID, userID, text)
}

func (m *mockLifecycleService) ListComments(ctx context.Context, courierID uint) ([]domain.Comment, error) {
	return m.ListCommentsFunc(ctx, courierID)
}

func (m *mockLifecycleService) TrackByBillAndName(ctx context.Context, billNumber, namePattern string) (*domain.Courier, error) {
	return m.TrackByBillAndNameFunc(ctx, billNumber, namePattern)
}

func (m *mockLifecycleService) CountCustomerCouriers(ctx context.Context, customerID uint) (int, error) {
	return m.CountCustomerCouriersFunc(ctx, customerID)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	} `json:"error"`
}

func newRouter(svc LifecycleService) http.Handler {
	ctrl := NewCourierController(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Route("/couriers", ctrl.Routes)
	r.Get("/users/{id}/couriers/count", ctrl.CountCustomerCouriers)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func sampleCourier(status domain.Status) *domain.Courier {
	at := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	return &domain.Courier{
		ID:              12,
		CustomerID:      3,
		AdminID:         4,
		BillNumber:      "BILL-2001",
		PickupAddress:   "A",
		DeliveryAddress: "B",
		Status:          status,
		CreatedAt:       at,
		UpdatedAt:       at,
		CustomerName:    "John Doe",
		CustomerEmail:   "john@example.com",
	}
}

func TestCreateCourier_Created(t *testing.T) {
	var got service.CreateCourierInput
	svc := &mockLifecycleService{
		CreateCourierFunc: func(ctx context.Context, in service.CreateCourierInput) (*domain.Courier, error) {
			got = in
			return sampleCourier(domain.StatusPending), nil
		},
	}

	rec, env := do(t, newRouter(svc), http.MethodPost, "/couriers",
		`{"customer_id":3,"admin_id":4,"bill_number":"BILL-2001","pickup_address":"A","delivery_address":"B"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, uint(3), got.CustomerID)
	assert.Equal(t, "BILL-2001", got.BillNumber)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Pending", data["status"])
	assert.Equal(t, float64(12), data["courier_id"])
}

func TestCreateCourier_InvalidJSON(t *testing.T) {
	rec, env := do(t, newRouter(&mockLifecycleService{}), http.MethodPost, "/couriers", `{"customer_id":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "body", env.Error.Details[0].Field)
}

func TestCreateCourier_Conflict(t *testing.T) {
	svc := &mockLifecycleService{
		CreateCourierFunc: func(ctx context.Context, in service.CreateCourierInput) (*domain.Courier, error) {
			return nil, apperrors.NewConflictError("courier with bill number BILL-2001 already exists")
		},
	}

	rec, env := do(t, newRouter(svc), http.MethodPost, "/couriers", `{"bill_number":"BILL-2001"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestUpdateStatus(t *testing.T) {
	var gotID uint
	var gotStatus, gotEmail string
	svc := &mockLifecycleService{
		TransitionStatusFunc: func(ctx context.Context, courierID uint, newStatus string, email string) (*domain.Courier, error) {
			gotID, gotStatus, gotEmail = courierID, newStatus, email
			return sampleCourier(domain.StatusInTransit), nil
		},
	}

	rec, env := do(t, newRouter(svc), http.MethodPut, "/couriers/12/status",
		`{"new_status":"In Transit","changed_by_admin_email":"a@x.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, uint(12), gotID)
	assert.Equal(t, "In Transit", gotStatus)
	assert.Equal(t, "a@x.com", gotEmail)
}

func TestUpdateStatus_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperrors.NewNotFoundError("courier with id 9999 not found"), http.StatusNotFound},
		{"validation", apperrors.NewValidationError("invalid status update"), http.StatusBadRequest},
		{"storage", apperrors.NewStorageError("failed to transition status", errors.New("deadlock")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockLifecycleService{
				TransitionStatusFunc: func(ctx context.Context, courierID uint, newStatus string, email string) (*domain.Courier, error) {
					return nil, tt.err
				},
			}

			rec, env := do(t, newRouter(svc), http.MethodPut, "/couriers/9999/status", `{"new_status":"Delivered","changed_by_admin_email":"a@x.com"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestInvalidPathID(t *testing.T) {
	h := newRouter(&mockLifecycleService{})

	for _, target := range []string{"/couriers/abc/status", "/couriers/0/logs", "/couriers/-1", "/users/x/couriers/count"} {
		t.Run(target, func(t *testing.T) {
			rec, env := do(t, h, http.MethodGet, target, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "id", env.Error.Details[0].Field)
		})
	}
}

func TestGetStatus(t *testing.T) {
	svc := &mockLifecycleService{
		GetStatusFunc: func(ctx context.Context, courierID uint) (domain.Status, error) {
			return domain.StatusDelivered, nil
		},
	}

	rec, env := do(t, newRouter(svc), http.MethodGet, "/couriers/12/status", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"courier_id":12,"status":"Delivered"}`, string(env.Data))
}

func TestGetLogs(t *testing.T) {
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := &mockLifecycleService{
		GetLogsFunc: func(ctx context.Context, courierID uint) (*domain.CourierLogs, error) {
			return &domain.CourierLogs{
				CourierID: courierID,
				History: []domain.DeliveryHistoryEntry{
					{ID: 1, CourierID: courierID, OldStatus: domain.StatusPending, NewStatus: domain.StatusInTransit, AdminID: 4, AdminEmail: "a@x.com", ChangedAt: at},
				},
			}, nil
		},
	}

	rec, env := do(t, newRouter(svc), http.MethodGet, "/couriers/12/logs", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		History []map[string]interface{} `json:"delivery_history"`
		Audit   []interface{}            `json:"audit_logs"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.History, 1)
	assert.Equal(t, "In Transit", data.History[0]["new_status"])
	assert.NotNil(t, data.Audit)
}

func TestTrackCourier(t *testing.T) {
	svc := &mockLifecycleService{
		TrackByBillAndNameFunc: func(ctx context.Context, billNumber, namePattern string) (*domain.Courier, error) {
			if billNumber == "BILL-2001" && namePattern == "oh" {
				return sampleCourier(domain.StatusInTransit), nil
			}
			return nil, apperrors.NewNotFoundError("no courier found with this bill number and name")
		},
	}
	h := newRouter(svc)

	rec, env := do(t, h, http.MethodGet, "/couriers/track?billNumber=BILL-2001&name=oh", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, _ = do(t, h, http.MethodGet, "/couriers/track?billNumber=BILL-2001&name=zz", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCouriers_Count(t *testing.T) {
	svc := &mockLifecycleService{
		ListCouriersFunc: func(ctx context.Context) ([]domain.Courier, error) {
			return []domain.Courier{*sampleCourier(domain.StatusPending), *sampleCourier(domain.StatusDelivered)}, nil
		},
	}

	rec, env := do(t, newRouter(svc), http.MethodGet, "/couriers", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
}

func TestDeleteCourier(t *testing.T) {
	svc := &mockLifecycleService{
		DeleteCourierFunc: func(ctx context.Context, courierID uint) (*domain.DeletedSummary, error) {
			return &domain.DeletedSummary{CourierID: courierID, BillNumber: "BILL-2001", HistoryDeleted: 2, AuditDeleted: 2, CommentsDeleted: 1}, nil
		},
	}

	rec, env := do(t, newRouter(svc), http.MethodDelete, "/couriers/12", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"courier_id":12,"bill_number":"BILL-2001","history_deleted":2,"audit_deleted":2,"comments_deleted":1}`, string(env.Data))
}

func TestAddComment(t *testing.T) {
	userID := uint(3)
	svc := &mockLifecycleService{
		AddCommentFunc: func(ctx context.Context, courierID, uid uint, text string) (*domain.Comment, error) {
			return &domain.Comment{ID: 1, CourierID: courierID, UserID: &userID, Text: text}, nil
		},
	}

	rec, env := do(t, newRouter(svc), http.MethodPost, "/couriers/12/comments", `{"user_id":3,"comment_text":"hi"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "hi", data["comment_text"])
	assert.Equal(t, false, data["system"])
}

func TestCountCustomerCouriers(t *testing.T) {
	svc := &mockLifecycleService{
		CountCustomerCouriersFunc: func(ctx context.Context, customerID uint) (int, error) {
			return 5, nil
		},
	}

	rec, env := do(t, newRouter(svc), http.MethodGet, "/users/3/couriers/count", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"customer_id":3,"courier_count":5}`, string(env.Data))
}
