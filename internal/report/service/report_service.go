package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"couriertrack/internal/domain"
	apperrors "couriertrack/internal/errors"
	"couriertrack/internal/infrastructure/metrics"
)

type ReportRepository interface {
	CourierDetails(ctx context.Context) ([]domain.CourierDetail, error)
	DeliveredCustomers(ctx context.Context) ([]domain.DeliveredCustomer, error)
	StatusSummary(ctx context.Context) ([]domain.StatusSummary, error)
	AdminPerformance(ctx context.Context) ([]domain.AdminPerformance, error)
	CustomerActivity(ctx context.Context) ([]domain.CustomerActivity, error)
	CountCouriers(ctx context.Context) (int64, error)
}

type ReportService struct {
	repo   ReportRepository
	logger *zap.Logger
}

func NewReportService(repo ReportRepository, logger *zap.Logger) *ReportService {
	return &ReportService{
		repo:   repo,
		logger: logger,
	}
}

func (s *ReportService) CourierDetails(ctx context.Context) ([]domain.CourierDetail, error) {
	rows, err := s.repo.CourierDetails(ctx)
	if err != nil {
		return nil, s.fail("courier_details", err)
	}
	return rows, nil
}

func (s *ReportService) DeliveredCustomers(ctx context.Context) ([]domain.DeliveredCustomer, error) {
	rows, err := s.repo.DeliveredCustomers(ctx)
	if err != nil {
		return nil, s.fail("delivered_customers", err)
	}
	return rows, nil
}

func (s *ReportService) StatusSummary(ctx context.Context) ([]domain.StatusSummary, error) {
	rows, err := s.repo.StatusSummary(ctx)
	if err != nil {
		return nil, s.fail("status_summary", err)
	}
	return rows, nil
}

func (s *ReportService) AdminPerformance(ctx context.Context) ([]domain.AdminPerformance, error) {
	rows, err := s.repo.AdminPerformance(ctx)
	if err != nil {
		return nil, s.fail("admin_performance", err)
	}
	return rows, nil
}

func (s *ReportService) CustomerActivity(ctx context.Context) ([]domain.CustomerActivity, error) {
	rows, err := s.repo.CustomerActivity(ctx)
	if err != nil {
		return nil, s.fail("customer_activity", err)
	}
	return rows, nil
}

// Overview runs its queries concurrently; the first failure cancels the
// rest.
func (s *ReportService) Overview(ctx context.Context) (*domain.Overview, error) {
	var overview domain.Overview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		overview.TotalCouriers, err = s.repo.CountCouriers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		overview.StatusSummary, err = s.repo.StatusSummary(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		overview.AdminPerformance, err = s.repo.AdminPerformance(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, s.fail("overview", err)
	}
	return &overview, nil
}

func (s *ReportService) fail(report string, err error) error {
	metrics.OperationErrorsTotal.WithLabelValues("report_" + report).Inc()
	s.logger.Error("report query failed", zap.String("report", report), zap.Error(err))
	return apperrors.NewStorageError("failed to build report", err)
}
