package plan

import (
	"encoding/json"
	"errors"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/mealweek/mealweek/internal/rest"
	"github.com/mealweek/mealweek/internal/utils"
)

type DayViewDTO struct {
	Date      string `json:"date"`
	Breakfast string `json:"breakfast,omitempty"`
	Lunch     string `json:"lunch,omitempty"`
	Dinner    string `json:"dinner,omitempty"`
	Note      string `json:"note,omitempty"`
}

type WeekViewDTO struct {
	WeekStart string       `json:"weekStart"`
	Days      []DayViewDTO `json:"days"`
}

type SaveDayDTO struct {
	Date      string `json:"date"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
	Note      string `json:"note"`
}

type CopyResultDTO struct {
	CopiedCount int `json:"copiedCount"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{
		service: service,
		clock:   clock,
	}
}

// anchorDate reads the optional "date" query parameter. When absent, the
// current day is used so the UI lands on the ongoing week.
func (h *Handler) anchorDate(r *http.Request) (civil.Date, error) {
	dateString := r.URL.Query().Get("date")
	if dateString == "" {
		return civil.DateOf(h.clock.Now()), nil
	}
	return civil.ParseDate(dateString)
}

// GetWeek godoc
// @Summary Get the weekly meal plan
// @Description Retrieve the merged seven-day view of the week containing the given date
// @Tags Plan
// @Produce json
// @Param date query string false "Date in YYYY-MM-DD format (any day of the week; defaults to today)"
// @Success 200 {object} WeekViewDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Router /api/plan/week [get]
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	anchor, err := h.anchorDate(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Incorrect date format",
			Details: "Date must be in YYYY-MM-DD format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	week, err := h.service.GetWeek(r.Context(), anchor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(weekViewToDTO(week)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// SaveDay godoc
// @Summary Save one day's plan
// @Description Upsert the three meal descriptions and the special note for a date as one atomic batch
// @Tags Plan
// @Accept json
// @Param day body SaveDayDTO true "Day details"
// @Success 204
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/plan/day [put]
func (h *Handler) SaveDay(w http.ResponseWriter, r *http.Request) {
	var dto SaveDayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	date, err := civil.ParseDate(dto.Date)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Incorrect date format",
			Details: "Date must be in YYYY-MM-DD format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	err = h.service.SaveDay(r.Context(), DayInput{
		Date:      date,
		Breakfast: dto.Breakfast,
		Lunch:     dto.Lunch,
		Dinner:    dto.Dinner,
		Note:      dto.Note,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CopyLastWeek godoc
// @Summary Copy the previous week's meals into the given week
// @Description Duplicate every meal record of the week before the one containing the given date, shifted forward by seven days. Overwrites existing meals in the target week.
// @Tags Plan
// @Produce json
// @Param date query string false "Date in YYYY-MM-DD format (any day of the target week; defaults to today)"
// @Success 200 {object} CopyResultDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Failure 409 {object} rest.ErrorResponse "Nothing to copy"
// @Router /api/plan/week/copy [post]
func (h *Handler) CopyLastWeek(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	anchor, err := h.anchorDate(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Incorrect date format",
			Details: "Date must be in YYYY-MM-DD format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	count, err := h.service.CopyLastWeek(r.Context(), anchor)
	if err != nil {
		if errors.Is(err, ErrNothingToCopy) {
			w.WriteHeader(http.StatusConflict)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Nothing to copy",
				Details: "The previous week has no meals",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(CopyResultDTO{CopiedCount: count}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func weekViewToDTO(week WeekView) WeekViewDTO {
	days := make([]DayViewDTO, 0, daysPerWeek)
	for _, date := range WeekDates(week.WeekStart) {
		day := week.Days[date]
		days = append(days, DayViewDTO{
			Date:      date.String(),
			Breakfast: day.Breakfast,
			Lunch:     day.Lunch,
			Dinner:    day.Dinner,
			Note:      day.Note,
		})
	}
	return WeekViewDTO{
		WeekStart: week.WeekStart.String(),
		Days:      days,
	}
}
