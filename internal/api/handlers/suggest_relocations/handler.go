package suggest_relocations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers"
	suggestRelocations "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/suggest_relocations"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры запроса"
	msgInvalidTime        = "некорректное время, ожидается HH:MM"
	msgOptimizerDisabled  = "оптимизатор размещения не подключен"
	msgOptimizerDown      = "оптимизатор размещения недоступен"
)

type Handler struct {
	useCase SuggestRelocationsUseCase
	logger  Logger
}

func NewHandler(useCase SuggestRelocationsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/days/{date}/relocations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	const route = "POST /days/{date}/relocations"

	date, err := handlers.PathDate(r)
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req SuggestRelocationsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(date))
	if err != nil {
		var parseErr *types.ParseError
		switch {
		case errors.As(err, &parseErr):
			h.logger.Warn("%s - Invalid time string: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidTime+": "+parseErr.Value)

		case errors.Is(err, suggestRelocations.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

		case errors.Is(err, suggestRelocations.ErrOptimizerDisabled):
			h.logger.Warn("%s - Optimizer disabled", route)
			handlers.RespondError(w, http.StatusNotImplemented, msgOptimizerDisabled)

		case errors.Is(err, suggestRelocations.ErrOptimizerUnavailable):
			h.logger.Error("%s - Optimizer unavailable: %v", route, err)
			handlers.RespondServiceUnavailable(w, msgOptimizerDown)

		default:
			h.logger.Error("%s - Failed to suggest relocations: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Relocations suggested: gaps=%d, relocations=%d", route, len(result.Gaps), len(result.Relocations))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
