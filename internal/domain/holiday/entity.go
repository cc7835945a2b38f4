package holiday

import (
	"time"
)

// Holiday is a calendar exclusion. Global holidays apply to every company;
// otherwise the entry belongs to the referenced company only.
type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	Global    bool
	CompanyID *string
	CreatedAt time.Time
}
