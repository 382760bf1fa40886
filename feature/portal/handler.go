package portal

import (
	"strings"

	"order-reconciler/core/logger"
	"order-reconciler/feature/orders/models"
	"order-reconciler/feature/provider"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TokenRequest is the client-credentials exchange payload.
type TokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	TTL         int    `json:"ttl"`
}

// CreateOrderRequest is the payload of POST /api/v1/orders.
type CreateOrderRequest struct {
	Type models.Type `json:"type"`
}

// UpdateStatusRequest is the payload of PATCH /api/v1/order/{id}.
type UpdateStatusRequest struct {
	Status models.Status `json:"status"`
}

// Handler serves the provider API over the simulated order book.
type Handler struct {
	orders *provider.SimulatedClient
	tokens *tokenIssuer
	cfg    Config
	logger *zap.Logger
}

// newHandler creates a new HTTP handler.
func newHandler(orders *provider.SimulatedClient, tokens *tokenIssuer, cfg Config, logger *zap.Logger) *Handler {
	return &Handler{orders: orders, tokens: tokens, cfg: cfg, logger: logger}
}

// RegisterRoutes registers the portal routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/v1")
	group.Post("/token", h.HandleToken)
	group.Post("/orders", h.RequireBearer, h.HandleCreateOrder)
	group.Get("/orders", h.RequireBearer, h.HandleListOrders)
	group.Get("/order/:id", h.RequireBearer, h.HandleGetOrder)
	group.Patch("/order/:id", h.RequireBearer, h.HandleUpdateStatus)
	group.Delete("/order/:id", h.RequireBearer, h.HandleDeleteOrder)
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// RequireBearer rejects requests without a valid issued token.
func (h *Handler) RequireBearer(c *fiber.Ctx) error {
	auth := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || !h.tokens.valid(token) {
		logger.WithRayID(h.logger, c).Warn("Rejected request with invalid token", zap.String("path", c.Path()))
		return errorJSON(c, fiber.StatusUnauthorized, "invalid or expired token")
	}
	return c.Next()
}

// HandleToken exchanges client credentials for a bearer token.
// @Summary Issue Token
// @Description Exchange client credentials for a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body TokenRequest true "Client credentials"
// @Success 200 {object} TokenResponse "Issued token"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /api/v1/token [post]
func (h *Handler) HandleToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.ClientID != h.cfg.ClientID || req.ClientSecret != h.cfg.ClientSecret {
		logger.WithRayID(h.logger, c).Warn("Rejected client credentials", zap.String("client_id", req.ClientID))
		return errorJSON(c, fiber.StatusUnauthorized, "invalid client credentials")
	}

	return c.JSON(TokenResponse{
		AccessToken: h.tokens.issue(),
		TokenType:   "Bearer",
		TTL:         h.cfg.TokenTTLSeconds,
	})
}

// HandleCreateOrder places a new order.
// @Summary Create Order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body CreateOrderRequest true "Order type"
// @Success 201 {object} provider.RemoteOrder "Created order"
// @Failure 422 {object} map[string]string "Unknown type"
// @Router /api/v1/orders [post]
func (h *Handler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !req.Type.IsValid() {
		return errorJSON(c, fiber.StatusUnprocessableEntity, "unknown order type")
	}

	id, err := h.orders.CreateOrder(c.UserContext(), &models.Order{Type: req.Type})
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	order, ok := h.orders.Lookup(id)
	if !ok {
		return errorJSON(c, fiber.StatusInternalServerError, "created order vanished")
	}

	logger.WithRayID(h.logger, c).Info("Order placed", zap.String("external_id", id), zap.String("type", string(req.Type)))
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListOrders lists every order.
// @Summary List Orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} provider.RemoteOrder "Orders"
// @Router /api/v1/orders [get]
func (h *Handler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListOrders(c.UserContext())
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(orders)
}

// HandleGetOrder returns one order.
// @Summary Get Order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "External order id"
// @Success 200 {object} provider.RemoteOrder "Order"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/v1/order/{id} [get]
func (h *Handler) HandleGetOrder(c *fiber.Ctx) error {
	order, ok := h.orders.Lookup(c.Params("id"))
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "order not found")
	}
	return c.JSON(order)
}

// HandleUpdateStatus advances an order, standing in for provider-side fulfilment.
// @Summary Update Order Status
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "External order id"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} provider.RemoteOrder "Order"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 422 {object} map[string]string "Unknown status"
// @Router /api/v1/order/{id} [patch]
func (h *Handler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !req.Status.IsValid() {
		return errorJSON(c, fiber.StatusUnprocessableEntity, "unknown status")
	}

	id := c.Params("id")
	if !h.orders.SetStatus(id, req.Status) {
		return errorJSON(c, fiber.StatusNotFound, "order not found")
	}
	order, ok := h.orders.Lookup(id)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "order not found")
	}

	logger.WithRayID(h.logger, c).Info("Order status changed", zap.String("external_id", id), zap.String("status", string(req.Status)))
	return c.JSON(order)
}

// HandleDeleteOrder removes an order.
// @Summary Delete Order
// @Tags orders
// @Security BearerAuth
// @Param id path string true "External order id"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/v1/order/{id} [delete]
func (h *Handler) HandleDeleteOrder(c *fiber.Ctx) error {
	if !h.orders.Remove(c.Params("id")) {
		return errorJSON(c, fiber.StatusNotFound, "order not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
