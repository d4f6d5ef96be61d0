package dto

import (
	"mime/multipart"

	"cowork/internal/domains/cafeteria/model"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	gModel "cowork/shared/model"
	"cowork/shared/pricing"
	"cowork/shared/timezone"

	"github.com/google/uuid"
)

type MenuCategory struct {
	OrderType model.OrderType `json:"order_type"`
	Items     []model.Item    `json:"items"`
}

type MenuResponse struct {
	Categories []MenuCategory `json:"categories"`
}

// NewMenuResponse lists coffee before tea.
func NewMenuResponse() MenuResponse {
	order := []model.OrderType{model.OrderTypeCoffee, model.OrderTypeTea}

	res := MenuResponse{Categories: make([]MenuCategory, 0, len(order))}
	for _, orderType := range order {
		res.Categories = append(res.Categories, MenuCategory{OrderType: orderType, Items: model.Menu[orderType]})
	}

	return res
}

type PlaceOrderRequest struct {
	OrderType           model.OrderType       `json:"order_type"           validate:"required,enum"`
	ItemName            string                `json:"item_name"            validate:"required,max=100"`
	Quantity            int                   `json:"quantity"             validate:"required,min=1,max=20"`
	SpaceID             string                `json:"space_id"             validate:"omitempty,uuid"`
	SpecialInstructions string                `json:"special_instructions" validate:"omitempty,max=500"`
	UTRNumber           string                `json:"utr_number"           validate:"omitempty,max=50"`
	IsPersonal          bool                  `json:"is_personal"`
	PaymentScreenshot   *multipart.FileHeader `json:"payment_screenshot"   validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
}

func (r *PlaceOrderRequest) ToModel(user string, item model.Item, spaceID, screenshot string) model.Order {
	order := model.Order{
		ID:                  uuid.NewString(),
		UserID:              user,
		OrderType:           r.OrderType,
		ItemName:            item.Name,
		Quantity:            r.Quantity,
		Price:               item.Price,
		TotalAmount:         pricing.Round2(item.Price * float64(r.Quantity)),
		SpecialInstructions: r.SpecialInstructions,
		PaymentScreenshot:   screenshot,
		UTRNumber:           r.UTRNumber,
		Status:              model.StatusPending,
		IsPersonal:          r.IsPersonal,
		Metadata:            gModel.NewMetadata(user, timezone.Now()),
	}

	if spaceID != constant.Empty {
		order.SpaceID = &spaceID
	}

	return order
}

type UpdateOrderStatusRequest struct {
	Status model.Status `json:"status" validate:"required,enum"`
}

type OrderResponse struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"user_id"`
	SpaceID             string          `json:"space_id,omitempty"`
	OrderType           model.OrderType `json:"order_type"`
	ItemName            string          `json:"item_name"`
	Quantity            int             `json:"quantity"`
	Price               float64         `json:"price"`
	TotalAmount         float64         `json:"total_amount"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	PaymentScreenshot   string          `json:"payment_screenshot,omitempty"`
	UTRNumber           string          `json:"utr_number,omitempty"`
	Status              model.Status    `json:"status"`
	IsPersonal          bool            `json:"is_personal"`
	gDto.Metadata
}

func (r *OrderResponse) FromModel(m model.Order) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.OrderType = m.OrderType
	r.ItemName = m.ItemName
	r.Quantity = m.Quantity
	r.Price = m.Price
	r.TotalAmount = m.TotalAmount
	r.SpecialInstructions = m.SpecialInstructions
	r.PaymentScreenshot = m.PaymentScreenshot
	r.UTRNumber = m.UTRNumber
	r.Status = m.Status
	r.IsPersonal = m.IsPersonal
	r.Metadata.FromModel(m.Metadata)

	if m.SpaceID != nil {
		r.SpaceID = *m.SpaceID
	}
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetOrdersResponse) FromModels(models []model.Order, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Orders = make([]OrderResponse, len(models))
	for i, mod := range models {
		r.Orders[i].FromModel(mod)
	}
}
