package model

import (
	"strings"

	"cowork/shared/model"
)

const (
	TableName  = "cafeteria_orders"
	EntityName = "cafeteria"

	FieldID                = "id"
	FieldUserID            = "user_id"
	FieldSpaceID           = "space_id"
	FieldOrderType         = "order_type"
	FieldItemName          = "item_name"
	FieldStatus            = "status"
	FieldIsPersonal        = "is_personal"
	FieldPaymentScreenshot = "payment_screenshot"
)

type OrderType string

const (
	OrderTypeCoffee OrderType = "Coffee"
	OrderTypeTea    OrderType = "Tea"
)

func (o OrderType) Valid() bool {
	_, ok := Menu[o]

	return ok
}

type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Menu is served as is; prices include tax.
var Menu = map[OrderType][]Item{
	OrderTypeCoffee: {
		{Name: "Cappuccino", Price: 30},
		{Name: "Black Coffee", Price: 30},
		{Name: "Espresso", Price: 30},
	},
	OrderTypeTea: {
		{Name: "Lemon Tea", Price: 20},
		{Name: "Masala Tea", Price: 20},
		{Name: "Cardamom Tea", Price: 20},
		{Name: "Green Tea", Price: 20},
	},
}

// Lookup finds an item of the order type by name, ignoring case.
func Lookup(orderType OrderType, name string) (Item, bool) {
	for _, item := range Menu[orderType] {
		if strings.EqualFold(item.Name, strings.TrimSpace(name)) {
			return item, true
		}
	}

	return Item{}, false
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusPreparing Status = "Preparing"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type Order struct {
	ID                  string    `db:"id"`
	UserID              string    `db:"user_id"`
	SpaceID             *string   `db:"space_id"`
	OrderType           OrderType `db:"order_type"`
	ItemName            string    `db:"item_name"`
	Quantity            int       `db:"quantity"`
	Price               float64   `db:"price"`
	TotalAmount         float64   `db:"total_amount"`
	SpecialInstructions string    `db:"special_instructions"`
	PaymentScreenshot   string    `db:"payment_screenshot"`
	UTRNumber           string    `db:"utr_number"`
	Status              Status    `db:"status"`
	IsPersonal          bool      `db:"is_personal"`
	model.Metadata
}
