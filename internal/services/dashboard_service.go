package services

import (
	"context"
	"time"

	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
)

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	GetInstancesByStatus(ctx context.Context) ([]models.PieChartData, error)
	GetBooksByLanguage(ctx context.Context) ([]models.PieChartData, error)
}

type dashboardService struct {
	repo repository.StatsRepository
	now  func() time.Time
}

func NewDashboardService(repo repository.StatsRepository) DashboardService {
	return &dashboardService{
		repo: repo,
		now:  time.Now,
	}
}

// GetDashboardStats counts overdue loans against the start of the current UTC day.
func (s *dashboardService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.repo.GetDashboardStats(ctx, today)
}

func (s *dashboardService) GetInstancesByStatus(ctx context.Context) ([]models.PieChartData, error) {
	return s.repo.GetInstancesByStatus(ctx)
}

func (s *dashboardService) GetBooksByLanguage(ctx context.Context) ([]models.PieChartData, error) {
	return s.repo.GetBooksByLanguage(ctx)
}
