package models

import "time"

// Payment methods accepted at checkout. No gateway is integrated; the tag is
// stored as-is and every order starts out pending.
const (
	PaymentOnline = "online"
	PaymentCard   = "card"
	PaymentCOD    = "cod"
)

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	return m == PaymentOnline || m == PaymentCard || m == PaymentCOD
}

// Order statuses. Transitions are modeled in the schema but nothing drives
// them yet; orders are created pending and never mutated.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// OrderItem is a snapshot of one line at placement time. Price and name are
// copied from the catalog so later edits never alter historical orders.
type OrderItem struct {
	ID       uint    `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID  string  `json:"-" gorm:"index;type:varchar(36)"`
	ItemID   string  `json:"itemId" gorm:"type:varchar(36)"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"` // price at the time of order
	Quantity int     `json:"quantity"`
}

// Customer holds the contact and delivery details embedded in an order. It is
// owned by the order and never persisted on its own.
type Customer struct {
	Fname        string `json:"fname" validate:"required"`
	Lname        string `json:"lname"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Pincode      string `json:"pincode" validate:"required"`
}

// Order represents a placed order. Subtotal, tax and total are derived from
// server-side prices and persisted for audit/display.
type Order struct {
	ID            string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Customer      Customer    `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`
	Subtotal      float64     `json:"subtotal"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"paymentMethod" gorm:"type:varchar(16)"`
	Status        string      `json:"status" gorm:"type:varchar(16);default:pending"`
	CreatedAt     time.Time   `json:"createdAt"`
}
