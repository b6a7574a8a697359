package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса прогноза погоды
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента прогноза погоды
func NewClient(baseURL string, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ForecastForDay получает прогноз на дату
func (c *Client) ForecastForDay(ctx context.Context, location Location, date time.Time) (*Forecast, error) {
	url := fmt.Sprintf("%s/forecast/daily?lat=%f&lon=%f&date=%s&key=%s",
		c.baseURL, location.Latitude, location.Longitude, date.Format(domain.DateFormat), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var forecast Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &forecast, nil
}

// ForecastForDayWithGracefulDegradation получает прогноз на дату с graceful
// degradation: при недоступности сервиса ошибка поглощается и возвращается
// DayForecast без прогноза, но с сообщением об ошибке
func (c *Client) ForecastForDayWithGracefulDegradation(ctx context.Context, location Location, date time.Time) DayForecast {
	result := DayForecast{Date: date.Format(domain.DateFormat)}

	forecast, err := c.ForecastForDay(ctx, location, date)
	if err != nil {
		c.log.Warn("Weather service unavailable, applying graceful degradation: %v", err)
		message := fmt.Sprintf("%v: %v", ErrServiceDegraded, err)
		result.ErrorMessage = &message
		return result
	}

	result.Weather = forecast
	return result
}
