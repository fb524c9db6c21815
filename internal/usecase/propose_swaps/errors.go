package propose_swaps

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrTooManyBookings возвращается, когда расписание превышает лимиты перебора
	ErrTooManyBookings = errors.New("schedule is too large for swap search")

	// ErrTimeout возвращается, когда поиск не уложился в таймаут запроса
	ErrTimeout = errors.New("swap search timed out")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
