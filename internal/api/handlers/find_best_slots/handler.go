package find_best_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
	findBestSlots "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/find_best_slots"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration    = "длительность должна быть целым числом минут"
	msgInvalidMinGap      = "minGap должен быть целым числом минут"
	msgMissingDuration    = "длительность обязательна"
	msgInvalidInput       = "некорректные параметры запроса"
	msgInvalidTime        = "некорректное время, ожидается HH:MM"
	msgBookingNotFound    = "бронирование не найдено"
	msgTherapistNotFound  = "терапевт не найден"
)

type Handler struct {
	useCase FindBestSlotsUseCase
	logger  Logger
}

func NewHandler(useCase FindBestSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleInline POST /api/v1/slots/best
// Расписание передаётся в теле запроса
func (h *Handler) HandleInline(w http.ResponseWriter, r *http.Request) {
	var req FindBestSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/best - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slots/best - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	h.execute(w, r, "POST /slots/best", useCaseReq)
}

// HandleByDate GET /api/v1/days/{date}/slots
// Query params: duration, therapistId, editBookingId, minGap, dayStart, dayEnd
func (h *Handler) HandleByDate(w http.ResponseWriter, r *http.Request) {
	const route = "GET /days/{date}/slots"

	date, err := handlers.PathDate(r)
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("%s - Invalid duration: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	minGap, err := handlers.QueryInt(r, "minGap")
	if err != nil {
		h.logger.Warn("%s - Invalid minGap: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidMinGap)
		return
	}

	q := queryParams{
		duration:      duration,
		therapistID:   handlers.QueryString(r, "therapistId"),
		editBookingID: handlers.QueryString(r, "editBookingId"),
		params: slotengine.Params{
			MinGapMinutes: minGap,
			DayStart:      types.TimeString(r.URL.Query().Get("dayStart")),
			DayEnd:        types.TimeString(r.URL.Query().Get("dayEnd")),
		},
	}
	if q.editBookingID == nil && duration == 0 {
		h.logger.Warn("%s - Missing duration", route)
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	h.execute(w, r, route, &findBestSlots.Request{
		Date:   date,
		Target: q.target(),
		Params: q.params,
	})
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, route string, req *findBestSlots.Request) {
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		var parseErr *types.ParseError
		switch {
		case errors.As(err, &parseErr):
			h.logger.Warn("%s - Invalid time string: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidTime+": "+parseErr.Value)

		case errors.Is(err, findBestSlots.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

		case errors.Is(err, findBestSlots.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: %v", route, err)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, findBestSlots.ErrTherapistNotFound):
			h.logger.Warn("%s - Therapist not found: %v", route, err)
			handlers.RespondNotFound(w, msgTherapistNotFound)

		default:
			h.logger.Error("%s - Failed to find slots: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Slots classified: therapists=%d, duration=%d", route, len(result.Therapists), result.DurationMinutes)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
