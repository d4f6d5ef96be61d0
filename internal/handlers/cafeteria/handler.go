package cafeteria

import (
	"net/http"
	"strings"

	"cowork/infras/otel"
	"cowork/internal/domains/cafeteria/model"
	"cowork/internal/domains/cafeteria/model/dto"
	"cowork/internal/domains/cafeteria/service"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	"cowork/shared/upload"
	"cowork/shared/validator"
	"cowork/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Cafeteria
	otel    otel.Otel
}

func New(service service.Cafeteria, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cafeteria", func(routerGroup chi.Router) {
		routerGroup.Get("/menu", handler.GetMenu)

		routerGroup.Route("/orders", func(orders chi.Router) {
			orders.Post("/", handler.PlaceOrder)
			orders.Get("/", handler.GetOrders)
			orders.Get("/me", handler.GetMyOrders)
			orders.Patch("/{id}/status", handler.UpdateOrderStatus)
		})
	})
}

// GetMenu returns the cafeteria menu.
// @Summary Get menu
// @Tags Cafeteria
// @Produce json
// @Success 200 {object} response.Data[dto.MenuResponse] "Menu"
// @Router /v1/cafeteria/menu [get]
func (handler *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMenu")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, "Menu retrieved successfully", handler.service.Menu(ctx))
}

// PlaceOrder orders from the menu.
// @Summary Place an order
// @Description Non personal orders are delivered to the caller's current space unless space_id is given.
// @Tags Cafeteria
// @Accept json,mpfd
// @Produce json
// @Param order_type formData string true "Coffee or Tea"
// @Param item_name formData string true "Menu item"
// @Param quantity formData integer true "Quantity"
// @Param space_id formData string false "Deliver to this space"
// @Param special_instructions formData string false "Instructions"
// @Param utr_number formData string false "Payment reference"
// @Param is_personal formData boolean false "Personal order"
// @Param payment_screenshot formData file false "Payment screenshot"
// @Success 201 {object} response.Data[dto.OrderResponse] "Order placed successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cafeteria/orders [post]
// @Security BearerAuth
func (handler *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PlaceOrder")
	defer scope.End()

	req, err := orderRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.PlaceOrder(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to place order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, "Order placed successfully", res)
}

func orderRequest(r *http.Request) (dto.PlaceOrderRequest, error) {
	req := dto.PlaceOrderRequest{}

	if !strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData) {
		return req, validator.Validate(r.Body, &req) // nolint:wrapcheck
	}

	if err := upload.ParseForm(r); err != nil {
		return req, err // nolint:wrapcheck
	}

	req.OrderType = model.OrderType(r.FormValue(model.FieldOrderType))
	req.ItemName = r.FormValue(model.FieldItemName)
	req.SpaceID = r.FormValue(model.FieldSpaceID)
	req.SpecialInstructions = r.FormValue("special_instructions")
	req.UTRNumber = r.FormValue("utr_number")
	req.PaymentScreenshot = upload.FormFile(r, model.FieldPaymentScreenshot)

	if personal := shared.ConvertStringToBool(r.FormValue(model.FieldIsPersonal)); personal != nil {
		req.IsPersonal = *personal
	}

	if quantity := r.FormValue("quantity"); quantity != constant.Empty {
		value, err := shared.ConvertStringToInt(quantity)
		if err != nil {
			return req, failure.BadRequestFromString("quantity must be a whole number") // nolint:wrapcheck
		}

		req.Quantity = value
	}

	return req, validator.ValidateStruct(&req) // nolint:wrapcheck
}

// GetMyOrders lists the caller's orders.
// @Summary Get my orders
// @Tags Cafeteria
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetOrdersResponse] "List of orders"
// @Failure 500 {object} response.Error
// @Router /v1/cafeteria/orders/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyOrders")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my orders")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Orders retrieved successfully", res)
}

// GetOrders lists all orders.
// @Summary Get all orders
// @Tags Cafeteria
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param order_type query string false "Filter by Coffee or Tea"
// @Param space_id query string false "Filter by space"
// @Success 200 {object} response.Data[dto.GetOrdersResponse] "List of orders"
// @Failure 500 {object} response.Error
// @Router /v1/cafeteria/orders [get]
// @Security BearerAuth
func (handler *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrders")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FromQuery(r, model.TableName, model.FieldStatus, model.FieldOrderType, model.FieldSpaceID, model.FieldUserID)

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get orders")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Orders retrieved successfully", res)
}

// UpdateOrderStatus moves an order along.
// @Summary Update order status
// @Tags Cafeteria
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.UpdateOrderStatusRequest true "Update Order Status Request"
// @Success 200 {object} response.Data[dto.OrderResponse] "Order updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cafeteria/orders/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOrderStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateOrderStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateStatus(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update order status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Order updated successfully", res)
}
