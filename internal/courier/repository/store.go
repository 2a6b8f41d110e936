package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	accountrepo "couriertrack/internal/account/repository"
	"couriertrack/internal/courier/ports"
	"couriertrack/internal/infrastructure/mysql"
)

// MySQLStore runs courier units of work as REPEATABLE READ transactions.
type MySQLStore struct {
	db        *sql.DB
	txTimeout time.Duration
	logger    *zap.Logger
}

func NewMySQLStore(db *sql.DB, txTimeout time.Duration, logger *zap.Logger) *MySQLStore {
	return &MySQLStore{
		db:        db,
		txTimeout: txTimeout,
		logger:    logger,
	}
}

func (s *MySQLStore) Repositories() ports.Repositories {
	return newRepositories(s.db)
}

func (s *MySQLStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	return s.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead}, fn)
}

func (s *MySQLStore) WithinReadTx(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	return s.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (s *MySQLStore) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, repos ports.Repositories) error) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, opts)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return fmt.Errorf("beginning transaction: %w", err)
	}
	// Rollback after a successful commit is a no-op.
	defer tx.Rollback()

	if err := fn(txCtx, newRepositories(tx)); err != nil {
		if mysql.IsLockContention(err) {
			s.logger.Warn("transaction aborted by lock contention", zap.Error(err))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Error(err))
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

type repositories struct {
	couriers *MySQLCourierRepository
	history  *MySQLHistoryRepository
	audit    *MySQLAuditRepository
	comments *MySQLCommentRepository
	users    *accountrepo.MySQLUserRepository
	admins   *accountrepo.MySQLAdminRepository
}

func newRepositories(q mysql.Querier) *repositories {
	return &repositories{
		couriers: NewMySQLCourierRepository(q),
		history:  NewMySQLHistoryRepository(q),
		audit:    NewMySQLAuditRepository(q),
		comments: NewMySQLCommentRepository(q),
		users:    accountrepo.NewMySQLUserRepository(q),
		admins:   accountrepo.NewMySQLAdminRepository(q),
	}
}

func (r *repositories) Couriers() ports.CourierRepository { return r.couriers }
func (r *repositories) History() ports.HistoryRepository  { return r.history }
func (r *repositories) Audit() ports.AuditRepository      { return r.audit }
func (r *repositories) Comments() ports.CommentRepository { return r.comments }
func (r *repositories) Users() ports.UserLookup           { return r.users }
func (r *repositories) Admins() ports.AdminLookup         { return r.admins }
