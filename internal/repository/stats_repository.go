package repository

import (
	"context"
	"time"

	"catalog-backend/internal/database"
	"catalog-backend/internal/models"
)

type StatsRepository interface {
	GetDashboardStats(ctx context.Context, today time.Time) (*models.DashboardStats, error)
	GetInstancesByStatus(ctx context.Context) ([]models.PieChartData, error)
	GetBooksByLanguage(ctx context.Context) ([]models.PieChartData, error)
}

type statsRepository struct {
	baseRepository
}

func NewStatsRepository(db *database.Database) StatsRepository {
	return &statsRepository{baseRepository: newBaseRepository(db)}
}

func (r *statsRepository) GetDashboardStats(ctx context.Context, today time.Time) (*models.DashboardStats, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var stats models.DashboardStats
	db := r.db.WithContext(ctx)

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Book{}, &stats.TotalBooks},
		{&models.Author{}, &stats.TotalAuthors},
		{&models.Genre{}, &stats.TotalGenres},
		{&models.Language{}, &stats.TotalLanguages},
		{&models.BookInstance{}, &stats.TotalInstances},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Model(&models.BookInstance{}).
		Where("status = ?", models.StatusAvailable).
		Count(&stats.AvailableInstances).Error; err != nil {
		return nil, err
	}

	// Overdue: on loan with a due date before today
	if err := db.Model(&models.BookInstance{}).
		Where("status = ? AND due_back IS NOT NULL AND due_back < ?", models.StatusOnLoan, today).
		Count(&stats.OverdueInstances).Error; err != nil {
		return nil, err
	}

	// Recently added books (limit 10)
	if err := preloadBook(db.Model(&models.Book{})).
		Order("created_at DESC, id DESC").
		Limit(10).
		Find(&stats.RecentlyAdded).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetInstancesByStatus returns one slice entry per loan status, zero counts included.
func (r *statsRepository) GetInstancesByStatus(ctx context.Context) ([]models.PieChartData, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).Model(&models.BookInstance{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	countMap := make(map[string]int64, len(rows))
	for _, row := range rows {
		countMap[row.Status] = row.Count
	}

	results := make([]models.PieChartData, 0, len(models.LoanStatuses))
	for _, status := range models.LoanStatuses {
		results = append(results, models.PieChartData{
			Label: status.Label(),
			Value: countMap[string(status)],
			Code:  string(status),
		})
	}
	return results, nil
}

func (r *statsRepository) GetBooksByLanguage(ctx context.Context) ([]models.PieChartData, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var results []models.PieChartData

	err := r.db.WithContext(ctx).Model(&models.Book{}).
		Select("COALESCE(languages.name, 'Unknown') as label, COUNT(books.id) as value").
		Joins("LEFT JOIN languages ON books.language_id = languages.id").
		Group("languages.name").
		Order("value DESC, label ASC").
		Limit(10).
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}
