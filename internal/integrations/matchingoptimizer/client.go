package matchingoptimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешнего сервиса оптимального размещения записей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Optimize запрашивает свободные промежутки и переносы для новой записи
func (c *Client) Optimize(ctx context.Context, req *OptimizeRequest) (*OptimizeResponse, error) {
	url := c.baseURL + "/optimize"

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.log.Info("MatchingOptimizer: POST %s bookings=%d therapists=%d duration=%d",
		url, len(req.Bookings), len(req.Therapists), req.NewRequest.Duration)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("MatchingOptimizer: request failed: %v", err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusBadRequest:
		var errResp ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		c.log.Warn("MatchingOptimizer: request rejected: %s", errResp.Message)
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, errResp.Message)
	case resp.StatusCode >= http.StatusInternalServerError:
		respBody, _ := io.ReadAll(resp.Body)
		c.log.Error("MatchingOptimizer: status %d: %s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("%w: status code %d", ErrUnavailable, resp.StatusCode)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var result OptimizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("MatchingOptimizer: slots=%d relocations=%d totalWeight=%.2f",
		len(result.Slots), len(result.Relocations), result.TotalWeight)
	return &result, nil
}
