package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kriyahr/workforce-backend-go/internal/domain/holiday"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

// IsGlobalHoliday implements holiday.HolidayRepository.
func (h *holidayRepository) IsGlobalHoliday(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM holidays
			WHERE date = $1 AND is_global = TRUE
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check global holiday: %w", err)
	}

	return exists, nil
}

// IsCompanyHoliday implements holiday.HolidayRepository.
func (h *holidayRepository) IsCompanyHoliday(ctx context.Context, companyID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM holidays
			WHERE date = $1 AND is_global = FALSE AND company_id = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, date, companyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check company holiday: %w", err)
	}

	return exists, nil
}

// List implements holiday.HolidayRepository.
func (h *holidayRepository) List(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, date, name, is_global, company_id, created_at
		FROM holidays
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var hol holiday.Holiday
		if err := rows.Scan(&hol.ID, &hol.Date, &hol.Name, &hol.Global, &hol.CompanyID, &hol.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, hol)
	}

	return holidays, rows.Err()
}
