package models

import "time"

// DailyMetric is one user's tracked values for a single day (Date is YYYY-MM-DD).
// Pointers = Clean JSON for values the user did not log.
type DailyMetric struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Date       string    `json:"date" db:"metric_date"`
	WeightKg   *float64  `json:"weightKg,omitempty" db:"weight_kg"`
	Calories   *int64    `json:"calories,omitempty" db:"calories"`
	Steps      *int64    `json:"steps,omitempty" db:"steps"`
	SleepHours *float64  `json:"sleepHours,omitempty" db:"sleep_hours"`
	Notes      string    `json:"notes" db:"notes"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
