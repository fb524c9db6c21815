package therapist

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("therapist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("therapist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("therapist.repository: failed to scan row")

	// ErrInvalidWeekday возвращается для дня недели вне 0..6
	ErrInvalidWeekday = errors.New("therapist.repository: invalid weekday")
)
