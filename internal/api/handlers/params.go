package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
)

var (
	errTrailingData = errors.New("unexpected data after JSON body")

	// ErrInvalidDate некорректная дата в пути запроса
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// PathDate разбирает переменную пути {date}
func PathDate(r *http.Request) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, mux.Vars(r)["date"])
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// QueryInt разбирает необязательный целочисленный query-параметр. Отсутствие - 0.
func QueryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// QueryString возвращает query-параметр или nil, если он не задан
func QueryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}
