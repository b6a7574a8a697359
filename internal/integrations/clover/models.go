package clover

// LineItem позиция заказа Clover. Суммы в центах, как требует API Clover
type LineItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	TaxCents int64  `json:"taxAmount,omitempty"`
}

// Discount скидка на заказ Clover
type Discount struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Order модель заказа из ответа Clover
type Order struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Total int64  `json:"total"`
}

// Состояния заказа Clover
const (
	OrderStateOpen   = "open"
	OrderStateLocked = "locked"
	OrderStatePaid   = "paid"
)

// createOrderRequest тело запроса создания заказа
type createOrderRequest struct {
	Currency  string     `json:"currency"`
	LineItems []LineItem `json:"lineItems"`
	Discounts []Discount `json:"discounts,omitempty"`
}

// updateOrderStateRequest тело запроса смены состояния заказа
type updateOrderStateRequest struct {
	State string `json:"state"`
}

// applyTenderRequest тело запроса оплаты заказа через tender
type applyTenderRequest struct {
	TenderID string `json:"tenderId"`
	Amount   int64  `json:"amount"`
}

// ErrorResponse модель ошибки от Clover
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
