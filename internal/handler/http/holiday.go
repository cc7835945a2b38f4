package http

import (
	"net/http"
	"time"

	"github.com/kriyahr/workforce-backend-go/internal/domain/holiday"
	"github.com/kriyahr/workforce-backend-go/internal/handler/http/response"
)

// HolidayHandler lists the holiday calendar consumed by the evaluators.
type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayRepo holiday.HolidayRepository
}

// NewHolidayHandler creates a new holiday handler
func NewHolidayHandler(holidayRepo holiday.HolidayRepository) HolidayHandler {
	return &holidayHandlerImpl{holidayRepo: holidayRepo}
}

type holidayResponse struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Name      string  `json:"name"`
	Global    bool    `json:"global"`
	CompanyID *string `json:"company_id,omitempty"`
}

// List returns holidays in the requested range, defaulting to the current year
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "Invalid from date, expected YYYY-MM-DD", nil)
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "Invalid to date, expected YYYY-MM-DD", nil)
			return
		}
		to = parsed
	}

	holidays, err := h.holidayRepo.List(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]holidayResponse, 0, len(holidays))
	for _, hol := range holidays {
		result = append(result, holidayResponse{
			ID:        hol.ID,
			Date:      hol.Date.Format("2006-01-02"),
			Name:      hol.Name,
			Global:    hol.Global,
			CompanyID: hol.CompanyID,
		})
	}

	response.Success(w, result)
}
