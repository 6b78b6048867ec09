package entity

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return true
	}
	return false
}

// CustomerInfo is the transient checkout form. It exists only while the
// checkout modal is open and is discarded on success or dismissal.
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Note  string `json:"note"`
}

type OrderItem struct {
	MenuItemID int `json:"menu_item_id"`
	Quantity   int `json:"quantity"`
}

// OrderPayload is built from the cart immediately before submission and
// never stored.
type OrderPayload struct {
	OrderType     OrderType   `json:"order_type"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	CustomerEmail string      `json:"customer_email"`
	Note          string      `json:"note"`
	TableToken    string      `json:"table_token"`
	Items         []OrderItem `json:"items"`
}
