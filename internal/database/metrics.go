package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// MetricStore holds per-user daily metrics.
type MetricStore struct {
	DB *sqlx.DB
}

func NewMetricStore(db *sqlx.DB) *MetricStore {
	return &MetricStore{DB: db}
}

// Upsert writes the metric for (UserID, Date), inserting or replacing the row
// in a single transaction.
func (s *MetricStore) Upsert(ctx context.Context, m *models.DailyMetric) error {
	m.UpdatedAt = time.Now().UTC()

	return WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		var id int64
		err := tx.GetContext(ctx, &id,
			"SELECT id FROM daily_metrics WHERE user_id = ? AND metric_date = ?", m.UserID, m.Date)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			result, err := tx.ExecContext(ctx, `
				INSERT INTO daily_metrics
				(user_id, metric_date, weight_kg, calories, steps, sleep_hours, notes, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				m.UserID, m.Date, m.WeightKg, m.Calories, m.Steps, m.SleepHours, m.Notes, m.UpdatedAt)
			if err != nil {
				return fmt.Errorf("insert metric: %w", err)
			}
			if m.ID, err = result.LastInsertId(); err != nil {
				return fmt.Errorf("insert metric: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("find metric: %w", err)
		}

		m.ID = id
		_, err = tx.ExecContext(ctx, `
			UPDATE daily_metrics
			SET weight_kg = ?, calories = ?, steps = ?, sleep_hours = ?, notes = ?, updated_at = ?
			WHERE id = ?`,
			m.WeightKg, m.Calories, m.Steps, m.SleepHours, m.Notes, m.UpdatedAt, id)
		if err != nil {
			return fmt.Errorf("update metric: %w", err)
		}
		return nil
	})
}

// List returns the user's metrics between from and to (inclusive, YYYY-MM-DD),
// ascending by date. Empty bounds are open.
func (s *MetricStore) List(ctx context.Context, userID int64, from, to string) ([]models.DailyMetric, error) {
	query := `
		SELECT id, user_id, metric_date, weight_kg, calories, steps, sleep_hours, notes, updated_at
		FROM daily_metrics
		WHERE user_id = ?`
	args := []interface{}{userID}
	if from != "" {
		query += " AND metric_date >= ?"
		args = append(args, from)
	}
	if to != "" {
		query += " AND metric_date <= ?"
		args = append(args, to)
	}
	query += " ORDER BY metric_date ASC"

	metrics := []models.DailyMetric{}
	if err := s.DB.SelectContext(ctx, &metrics, query, args...); err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	return metrics, nil
}
