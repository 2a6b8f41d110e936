package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"couriertrack/internal/courier/ports"
	"couriertrack/internal/domain"
	apperrors "couriertrack/internal/errors"
	"couriertrack/internal/infrastructure/metrics"
)

const (
	maxBillNumberLength = 50
	maxAddressLength    = 255

	defaultPublishTimeout = time.Second
)

type CreateCourierInput struct {
	CustomerID      uint
	AdminID         uint
	BillNumber      string
	PickupAddress   string
	DeliveryAddress string
}

// LifecycleService owns couriers and the side effects of their status
// changes. Every transition writes the status, one history entry, one
// audit entry and, on delivery, one system comment in a single transaction.
type LifecycleService struct {
	store            ports.Store
	publisher        ports.EventPublisher
	logger           *zap.Logger
	deliveredComment string
	publishTimeout   time.Duration
	now              func() time.Time
}

func NewLifecycleService(
	store ports.Store,
	publisher ports.EventPublisher,
	logger *zap.Logger,
	deliveredComment string,
) *LifecycleService {
	if deliveredComment == "" {
		deliveredComment = domain.DeliveredCommentText
	}
	return &LifecycleService{
		store:            store,
		publisher:        publisher,
		logger:           logger,
		deliveredComment: deliveredComment,
		publishTimeout:   defaultPublishTimeout,
		now:              time.Now,
	}
}

// timestamp is truncated to the precision of DATETIME(6) columns.
func (s *LifecycleService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *LifecycleService) CreateCourier(ctx context.Context, in CreateCourierInput) (*domain.Courier, error) {
	in.BillNumber = strings.TrimSpace(in.BillNumber)
	in.PickupAddress = strings.TrimSpace(in.PickupAddress)
	in.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)

	if err := validateCreateCourier(in); err != nil {
		return nil, err
	}

	var created *domain.Courier
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if _, err := repos.Users().FindByID(ctx, in.CustomerID); err != nil {
			return err
		}
		if _, err := repos.Admins().FindByID(ctx, in.AdminID); err != nil {
			return err
		}

		exists, err := repos.Couriers().ExistsByBillNumber(ctx, in.BillNumber)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.NewConflictError(fmt.Sprintf("courier with bill number %s already exists", in.BillNumber))
		}

		now := s.timestamp()
		id, err := repos.Couriers().Insert(ctx, domain.Courier{
			CustomerID:      in.CustomerID,
			AdminID:         in.AdminID,
			BillNumber:      in.BillNumber,
			PickupAddress:   in.PickupAddress,
			DeliveryAddress: in.DeliveryAddress,
			Status:          domain.StatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return err
		}

		created, err = repos.Couriers().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail("create_courier", err)
	}

	metrics.CouriersCreatedTotal.Inc()
	s.logger.Info("courier created",
		zap.Uint("courierId", created.ID),
		zap.String("billNumber", created.BillNumber),
		zap.Uint("customerId", created.CustomerID),
		zap.Uint("adminId", created.AdminID),
	)

	return created, nil
}

func validateCreateCourier(in CreateCourierInput) error {
	var details []apperrors.ValidationDetail

	if in.CustomerID == 0 {
		details = append(details, apperrors.ValidationDetail{Field: "customer_id", Message: "customer_id is required"})
	}
	if in.AdminID == 0 {
		details = append(details, apperrors.ValidationDetail{Field: "admin_id", Message: "admin_id is required"})
	}
	details = appendTextDetail(details, "bill_number", in.BillNumber, maxBillNumberLength)
	details = appendTextDetail(details, "pickup_address", in.PickupAddress, maxAddressLength)
	details = appendTextDetail(details, "delivery_address", in.DeliveryAddress, maxAddressLength)

	if len(details) > 0 {
		return apperrors.NewValidationError("all fields are required", details...)
	}
	return nil
}

func appendTextDetail(details []apperrors.ValidationDetail, field, value string, maxLen int) []apperrors.ValidationDetail {
	switch {
	case value == "":
		return append(details, apperrors.ValidationDetail{Field: field, Message: field + " is required"})
	case utf8.RuneCountInString(value) > maxLen:
		return append(details, apperrors.ValidationDetail{Field: field, Message: fmt.Sprintf("%s exceeds maximum length of %d", field, maxLen)})
	}
	return details
}

// TransitionStatus moves a courier to newStatus. Any status may follow any
// other, including itself; a self-transition is still fully recorded.
func (s *LifecycleService) TransitionStatus(ctx context.Context, courierID uint, newStatus string, changedByAdminEmail string) (*domain.Courier, error) {
	status, adminEmail, err := validateTransition(courierID, newStatus, changedByAdminEmail)
	if err != nil {
		return nil, err
	}

	var (
		updated   *domain.Courier
		oldStatus domain.Status
		changedAt time.Time
	)
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		current, err := repos.Couriers().FindByIDForUpdate(ctx, courierID)
		if err != nil {
			return err
		}
		admin, err := repos.Admins().FindByEmail(ctx, adminEmail)
		if err != nil {
			return err
		}

		oldStatus = current.Status
		changedAt = s.timestamp()

		if err := repos.Couriers().UpdateStatus(ctx, courierID, status, changedAt); err != nil {
			return err
		}

		if _, err := repos.History().Insert(ctx, domain.DeliveryHistoryEntry{
			CourierID:  courierID,
			OldStatus:  oldStatus,
			NewStatus:  status,
			AdminID:    admin.ID,
			AdminEmail: admin.Email,
			ChangedAt:  changedAt,
		}); err != nil {
			return err
		}

		if _, err := repos.Audit().Insert(ctx, domain.AuditEntry{
			CourierID:  courierID,
			ActionType: domain.AuditActionStatusUpdate,
			OldStatus:  oldStatus,
			NewStatus:  status,
			AdminID:    admin.ID,
			AdminEmail: admin.Email,
			ChangedAt:  changedAt,
		}); err != nil {
			return err
		}

		if status == domain.StatusDelivered {
			if _, err := repos.Comments().Insert(ctx, domain.Comment{
				CourierID: courierID,
				Text:      s.deliveredComment,
				CreatedAt: changedAt,
			}); err != nil {
				return err
			}
		}

		updated, err = repos.Couriers().FindByID(ctx, courierID)
		return err
	})
	if err != nil {
		return nil, s.fail("transition_status", err)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(oldStatus), string(status)).Inc()
	if status == domain.StatusDelivered {
		metrics.CommentsAddedTotal.WithLabelValues("system").Inc()
	}
	s.logger.Info("courier status updated",
		zap.Uint("courierId", courierID),
		zap.String("oldStatus", string(oldStatus)),
		zap.String("newStatus", string(status)),
		zap.String("adminEmail", adminEmail),
	)

	s.publishStatusChanged(ctx, domain.StatusChangedEvent{
		EventID:    uuid.NewString(),
		CourierID:  courierID,
		BillNumber: updated.BillNumber,
		OldStatus:  oldStatus,
		NewStatus:  status,
		AdminEmail: adminEmail,
		OccurredAt: changedAt,
	})

	return updated, nil
}

func validateTransition(courierID uint, newStatus, adminEmail string) (domain.Status, string, error) {
	var details []apperrors.ValidationDetail

	if courierID == 0 {
		details = append(details, apperrors.ValidationDetail{Field: "id", Message: "id must be a positive integer"})
	}

	status, ok := domain.ParseStatus(newStatus)
	if !ok {
		msg := fmt.Sprintf("new_status must be one of %s", joinStatuses())
		if strings.TrimSpace(newStatus) == "" {
			msg = "new_status is required"
		}
		details = append(details, apperrors.ValidationDetail{Field: "new_status", Message: msg})
	}

	adminEmail = strings.TrimSpace(adminEmail)
	if adminEmail == "" {
		details = append(details, apperrors.ValidationDetail{Field: "changed_by_admin_email", Message: "changed_by_admin_email is required"})
	}

	if len(details) > 0 {
		return "", "", apperrors.NewValidationError("invalid status update", details...)
	}
	return status, adminEmail, nil
}

func joinStatuses() string {
	all := domain.Statuses()
	names := make([]string, len(all))
	for i, st := range all {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}

// publishStatusChanged runs after commit; a failure is logged but the
// transition stands.
func (s *LifecycleService) publishStatusChanged(ctx context.Context, event domain.StatusChangedEvent) {
	if s.publisher == nil {
		return
	}
	// detached from the request: the transition is already committed
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	if err := s.publisher.PublishStatusChanged(ctx, event); err != nil {
		metrics.EventPublishFailuresTotal.Inc()
		s.logger.Warn("failed to publish status event",
			zap.Uint("courierId", event.CourierID),
			zap.String("eventId", event.EventID),
			zap.Error(err),
		)
	}
}

func (s *LifecycleService) GetStatus(ctx context.Context, courierID uint) (domain.Status, error) {
	courier, err := s.GetCourier(ctx, courierID)
	if err != nil {
		return "", err
	}
	return courier.Status, nil
}

func (s *LifecycleService) GetCourier(ctx context.Context, courierID uint) (*domain.Courier, error) {
	courier, err := s.store.Repositories().Couriers().FindByID(ctx, courierID)
	if err != nil {
		return nil, s.fail("get_courier", err)
	}
	return courier, nil
}

func (s *LifecycleService) ListCouriers(ctx context.Context) ([]domain.Courier, error) {
	couriers, err := s.store.Repositories().Couriers().List(ctx)
	if err != nil {
		return nil, s.fail("list_couriers", err)
	}
	return couriers, nil
}

// GetLogs reads history, audit and comments from one snapshot so a
// concurrent transition is seen entirely or not at all.
func (s *LifecycleService) GetLogs(ctx context.Context, courierID uint) (*domain.CourierLogs, error) {
	logs := &domain.CourierLogs{CourierID: courierID}

	err := s.store.WithinReadTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if _, err := repos.Couriers().FindByID(ctx, courierID); err != nil {
			return err
		}

		var err error
		if logs.History, err = repos.History().ListByCourier(ctx, courierID); err != nil {
			return err
		}
		if logs.Audit, err = repos.Audit().ListByCourier(ctx, courierID); err != nil {
			return err
		}
		logs.Comments, err = repos.Comments().ListByCourier(ctx, courierID)
		return err
	})
	if err != nil {
		return nil, s.fail("get_logs", err)
	}

	return logs, nil
}

func (s *LifecycleService) DeleteCourier(ctx context.Context, courierID uint) (*domain.DeletedSummary, error) {
	var summary domain.DeletedSummary

	err := s.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		courier, err := repos.Couriers().FindByIDForUpdate(ctx, courierID)
		if err != nil {
			return err
		}
		summary.CourierID = courier.ID
		summary.BillNumber = courier.BillNumber

		if summary.HistoryDeleted, err = repos.History().DeleteByCourier(ctx, courierID); err != nil {
			return err
		}
		if summary.AuditDeleted, err = repos.Audit().DeleteByCourier(ctx, courierID); err != nil {
			return err
		}
		if summary.CommentsDeleted, err = repos.Comments().DeleteByCourier(ctx, courierID); err != nil {
			return err
		}
		return repos.Couriers().Delete(ctx, courierID)
	})
	if err != nil {
		return nil, s.fail("delete_courier", err)
	}

	metrics.CouriersDeletedTotal.Inc()
	s.logger.Info("courier deleted",
		zap.Uint("courierId", summary.CourierID),
		zap.String("billNumber", summary.BillNumber),
		zap.Int64("historyDeleted", summary.HistoryDeleted),
		zap.Int64("auditDeleted", summary.AuditDeleted),
		zap.Int64("commentsDeleted", summary.CommentsDeleted),
	)

	return &summary, nil
}

func (s *LifecycleService) AddComment(ctx context.Context, courierID, userID uint, text string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)

	var details []apperrors.ValidationDetail
	if courierID == 0 {
		details = append(details, apperrors.ValidationDetail{Field: "courier_id", Message: "courier_id is required"})
	}
	if userID == 0 {
		details = append(details, apperrors.ValidationDetail{Field: "user_id", Message: "user_id is required"})
	}
	details = appendTextDetail(details, "comment_text", text, domain.MaxCommentLength)
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid comment", details...)
	}

	var comment domain.Comment
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if _, err := repos.Couriers().FindByID(ctx, courierID); err != nil {
			return err
		}
		user, err := repos.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}

		comment = domain.Comment{
			CourierID: courierID,
			UserID:    &user.ID,
			Text:      text,
			CreatedAt: s.timestamp(),
			UserName:  &user.Name,
			UserEmail: &user.Email,
		}
		comment.ID, err = repos.Comments().Insert(ctx, comment)
		return err
	})
	if err != nil {
		return nil, s.fail("add_comment", err)
	}

	metrics.CommentsAddedTotal.WithLabelValues("user").Inc()
	s.logger.Info("comment added", zap.Uint("courierId", courierID), zap.Uint("userId", userID), zap.Uint("commentId", comment.ID))

	return &comment, nil
}

func (s *LifecycleService) ListComments(ctx context.Context, courierID uint) ([]domain.Comment, error) {
	repos := s.store.Repositories()
	if _, err := repos.Couriers().FindByID(ctx, courierID); err != nil {
		return nil, s.fail("list_comments", err)
	}

	comments, err := repos.Comments().ListByCourier(ctx, courierID)
	if err != nil {
		return nil, s.fail("list_comments", err)
	}
	return comments, nil
}

// TrackByBillAndName matches the bill number exactly and the customer name
// as a case-insensitive substring.
func (s *LifecycleService) TrackByBillAndName(ctx context.Context, billNumber, namePattern string) (*domain.Courier, error) {
	billNumber = strings.TrimSpace(billNumber)
	namePattern = strings.TrimSpace(namePattern)

	var details []apperrors.ValidationDetail
	if billNumber == "" {
		details = append(details, apperrors.ValidationDetail{Field: "billNumber", Message: "billNumber is required"})
	}
	if namePattern == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("bill number and name are required", details...)
	}

	courier, err := s.store.Repositories().Couriers().FindByBillAndCustomerName(ctx, billNumber, namePattern)
	if err != nil {
		return nil, s.fail("track_courier", err)
	}
	return courier, nil
}

func (s *LifecycleService) CountCustomerCouriers(ctx context.Context, customerID uint) (int, error) {
	repos := s.store.Repositories()
	if _, err := repos.Users().FindByID(ctx, customerID); err != nil {
		return 0, s.fail("count_customer_couriers", err)
	}

	count, err := repos.Couriers().CountByCustomer(ctx, customerID)
	if err != nil {
		return 0, s.fail("count_customer_couriers", err)
	}
	return count, nil
}

// fail passes domain errors through and wraps anything else as a
// StorageError.
func (s *LifecycleService) fail(operation string, err error) error {
	if _, ok := apperrors.IsValidationError(err); ok {
		return err
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return err
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		return err
	}

	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
	s.logger.Error("courier operation failed", zap.String("operation", operation), zap.Error(err))
	return apperrors.NewStorageError(fmt.Sprintf("failed to %s", strings.ReplaceAll(operation, "_", " ")), err)
}
