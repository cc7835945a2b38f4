package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// IsGlobalHoliday reports whether the date is a holiday for everyone.
	IsGlobalHoliday(ctx context.Context, date time.Time) (bool, error)

	// IsCompanyHoliday reports whether the company has declared the date a
	// holiday (global entries are not included here).
	IsCompanyHoliday(ctx context.Context, companyID string, date time.Time) (bool, error)

	// List returns holidays within the inclusive date range.
	List(ctx context.Context, from, to time.Time) ([]Holiday, error)
}
