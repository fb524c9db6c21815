package matchingoptimizer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("matchingoptimizer client: internal error")

	// ErrUnavailable возвращается, когда оптимизатор недоступен (сеть, таймаут, 5xx)
	ErrUnavailable = errors.New("matchingoptimizer client: service unavailable")

	// ErrInvalidRequest возвращается, когда оптимизатор отклонил запрос (400)
	ErrInvalidRequest = errors.New("matchingoptimizer client: request rejected")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("matchingoptimizer client: invalid response")
)
