package suggest_relocations

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrOptimizerDisabled возвращается, когда интеграция с оптимизатором выключена
	ErrOptimizerDisabled = errors.New("matching optimizer is disabled")

	// ErrOptimizerUnavailable возвращается, когда оптимизатор недоступен или ответил ошибкой
	ErrOptimizerUnavailable = errors.New("matching optimizer is unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
