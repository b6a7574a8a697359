package clover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с Clover order API.
// Контракт для вызывающей стороны: любая ошибка любого метода — жесткий
// отказ pay-перехода, транзакция должна быть откатана целиком.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Clover
func NewClient(baseURL string, apiToken string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateOrder создает заказ с позициями и скидками, возвращает его идентификатор
func (c *Client) CreateOrder(ctx context.Context, lineItems []LineItem, discounts []Discount) (string, error) {
	body := createOrderRequest{
		Currency:  "USD",
		LineItems: lineItems,
		Discounts: discounts,
	}

	var order Order
	if err := c.do(ctx, http.MethodPost, "/v3/orders", body, &order); err != nil {
		return "", fmt.Errorf("%w: CreateOrder: %v", ErrOrderFailed, err)
	}

	if order.ID == "" {
		return "", fmt.Errorf("%w: CreateOrder - empty order id", ErrInvalidResponse)
	}

	c.log.Info("Clover order created: order_id=%s, line_items=%d", order.ID, len(lineItems))
	return order.ID, nil
}

// UpdateOrderState переводит заказ в указанное состояние
func (c *Client) UpdateOrderState(ctx context.Context, orderID string, state string) error {
	path := fmt.Sprintf("/v3/orders/%s", orderID)
	if err := c.do(ctx, http.MethodPost, path, updateOrderStateRequest{State: state}, nil); err != nil {
		return fmt.Errorf("%w: UpdateOrderState - order_id=%s state=%s: %v", ErrOrderFailed, orderID, state, err)
	}
	return nil
}

// ApplyTender оплачивает заказ через настроенный tender. Сумма в центах.
func (c *Client) ApplyTender(ctx context.Context, orderID string, tenderID string, amount int64) error {
	path := fmt.Sprintf("/v3/orders/%s/payments", orderID)
	if err := c.do(ctx, http.MethodPost, path, applyTenderRequest{TenderID: tenderID, Amount: amount}, nil); err != nil {
		return fmt.Errorf("%w: ApplyTender - order_id=%s: %v", ErrTenderFailed, orderID, err)
	}

	c.log.Info("Clover tender applied: order_id=%s, amount=%d", orderID, amount)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// ToCents конвертирует сумму в долларах в центы для API Clover
func ToCents(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
