package propose_swaps

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
	proposeSwaps "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/propose_swaps"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration    = "длительность должна быть целым числом минут"
	msgInvalidMinGap      = "minGap должен быть целым числом минут"
	msgInvalidInput       = "некорректные параметры запроса"
	msgInvalidTime        = "некорректное время, ожидается HH:MM"
	msgTooManyBookings    = "расписание слишком большое для поиска обменов"
	msgTimeout            = "поиск обменов не уложился в отведённое время"
)

type Handler struct {
	useCase ProposeSwapsUseCase
	logger  Logger
}

func NewHandler(useCase ProposeSwapsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleInline POST /api/v1/swaps/proposals
func (h *Handler) HandleInline(w http.ResponseWriter, r *http.Request) {
	var req ProposeSwapsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /swaps/proposals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /swaps/proposals - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	h.execute(w, r, "POST /swaps/proposals", useCaseReq)
}

// HandleByDate GET /api/v1/days/{date}/swaps?duration=90&minGap=60
func (h *Handler) HandleByDate(w http.ResponseWriter, r *http.Request) {
	const route = "GET /days/{date}/swaps"

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

	h.execute(w, r, route, &proposeSwaps.Request{
		Date:            date,
		DurationMinutes: duration,
		Params: slotengine.Params{
			MinGapMinutes: minGap,
			DayStart:      types.TimeString(r.URL.Query().Get("dayStart")),
			DayEnd:        types.TimeString(r.URL.Query().Get("dayEnd")),
		},
	})
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, route string, req *proposeSwaps.Request) {
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		var parseErr *types.ParseError
		switch {
		case errors.As(err, &parseErr):
			h.logger.Warn("%s - Invalid time string: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidTime+": "+parseErr.Value)

		case errors.Is(err, proposeSwaps.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

		case errors.Is(err, proposeSwaps.ErrTooManyBookings):
			h.logger.Warn("%s - Schedule too large: %v", route, err)
			handlers.RespondUnprocessable(w, msgTooManyBookings)

		case errors.Is(err, proposeSwaps.ErrTimeout):
			h.logger.Warn("%s - Search timed out: %v", route, err)
			handlers.RespondServiceUnavailable(w, msgTimeout)

		default:
			h.logger.Error("%s - Failed to propose swaps: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Swap proposals: count=%d, evaluated=%d", route, len(result.Proposals), result.Stats.Evaluated)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
