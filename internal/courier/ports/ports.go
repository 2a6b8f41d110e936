// Package ports declares the storage and messaging contracts the courier
// lifecycle depends on.
package ports

import (
	"context"
	"time"

	"couriertrack/internal/domain"
)

// Store hands out repositories either bound to a single unit of work or
// running in autocommit mode. A failed WithinTx callback rolls back every
// write made through its Repositories.
type Store interface {
	Repositories() Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	WithinReadTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type Repositories interface {
	Couriers() CourierRepository
	History() HistoryRepository
	Audit() AuditRepository
	Comments() CommentRepository
	Users() UserLookup
	Admins() AdminLookup
}

type CourierRepository interface {
	Insert(ctx context.Context, courier domain.Courier) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Courier, error)
	// FindByIDForUpdate locks the courier row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uint) (*domain.Courier, error)
	FindByBillAndCustomerName(ctx context.Context, billNumber, namePattern string) (*domain.Courier, error)
	ExistsByBillNumber(ctx context.Context, billNumber string) (bool, error)
	List(ctx context.Context) ([]domain.Courier, error)
	CountByCustomer(ctx context.Context, customerID uint) (int, error)
	UpdateStatus(ctx context.Context, id uint, status domain.Status, updatedAt time.Time) error
	Delete(ctx context.Context, id uint) error
}

type HistoryRepository interface {
	Insert(ctx context.Context, entry domain.DeliveryHistoryEntry) (uint, error)
	ListByCourier(ctx context.Context, courierID uint) ([]domain.DeliveryHistoryEntry, error)
	DeleteByCourier(ctx context.Context, courierID uint) (int64, error)
}

type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) (uint, error)
	ListByCourier(ctx context.Context, courierID uint) ([]domain.AuditEntry, error)
	DeleteByCourier(ctx context.Context, courierID uint) (int64, error)
}

type CommentRepository interface {
	Insert(ctx context.Context, comment domain.Comment) (uint, error)
	ListByCourier(ctx context.Context, courierID uint) ([]domain.Comment, error)
	DeleteByCourier(ctx context.Context, courierID uint) (int64, error)
}

type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

type AdminLookup interface {
	FindByID(ctx context.Context, id uint) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event domain.StatusChangedEvent) error
}
