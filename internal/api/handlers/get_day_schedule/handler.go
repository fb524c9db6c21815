package get_day_schedule

import (
	"net/http"

	"github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/days/{date}/bookings?therapistId=A
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.PathDate(r)
	if err != nil {
		h.logger.Warn("GET /days/{date}/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	schedule, err := h.service.GetDaySchedule(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /days/{date}/bookings - Failed to get schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(schedule, r.URL.Query().Get("therapistId")))
}
