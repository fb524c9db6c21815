package find_best_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrBookingNotFound возвращается, когда переносимая запись не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrTherapistNotFound возвращается, когда терапевт не работает в этот день
	ErrTherapistNotFound = errors.New("therapist not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
