package controllers

import (
	"errors"
	"net/http"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/services"
	"github.com/MatheusTerradasDEV/ChapaQuente/internal/board"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/ctx"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/logger"
)

// OrderController exposes the admin order board and the intake endpoint.
type OrderController struct {
	service *services.OrderService
	board   *board.Board
}

func NewOrderController(service *services.OrderService, b *board.Board) *OrderController {
	return &OrderController{service: service, board: b}
}

// Index handles GET /api/admin/orders. The list is served from the board,
// filtered by the optional "search" and "status" query parameters.
func (o *OrderController) Index(c *ctx.Context) {
	search := c.Query("search")
	status := c.Query("status")

	orders := o.board.Snapshot(search, status)
	c.Success(map[string]any{
		"orders": orders,
		"counts": o.board.StatusCounts(),
	})
}

// Show handles GET /api/admin/orders/{id}.
func (o *OrderController) Show(c *ctx.Context) {
	order, ok := o.board.Get(c.Param("id"))
	if !ok {
		c.NotFound("Pedido não encontrado")
		return
	}
	c.Success(order)
}

type statusRequest struct {
	Status string `json:"status" validate:"required,in=pending,accepted,preparing,delivering,completed"`
}

// UpdateStatus handles PATCH /api/admin/orders/{id}/status.
func (o *OrderController) UpdateStatus(c *ctx.Context) {
	var body statusRequest
	if !c.BindJSON(&body) {
		return
	}

	if err := o.service.ChangeStatus(c.Param("id"), body.Status); err != nil {
		o.fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Status atualizado"})
}

// Accept handles POST /api/admin/orders/{id}/accept. On success the 80mm
// print document is returned as HTML for the admin screen to open.
func (o *OrderController) Accept(c *ctx.Context) {
	doc, err := o.service.AcceptAndPrint(c.Param("id"))
	if err != nil {
		o.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, doc)
}

// Destroy handles DELETE /api/admin/orders/{id}.
func (o *OrderController) Destroy(c *ctx.Context) {
	if err := o.service.Delete(c.Param("id")); err != nil {
		o.fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Pedido removido"})
}

// Intake handles POST /api/orders: new orders arriving from the ordering
// channel. This is the write side of the board's insert events.
func (o *OrderController) Intake(c *ctx.Context) {
	var body services.IntakeInput
	if !c.BindJSON(&body) {
		return
	}
	if body.DeliveryType == models.DeliveryTypeDelivery && body.Address == "" {
		c.ValidationError(map[string]string{"address": "The address field is required for delivery."})
		return
	}

	order, err := o.service.Intake(body)
	if err != nil {
		o.fail(c, err)
		return
	}
	c.Created(order)
}

func (o *OrderController) fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		c.NotFound("Pedido não encontrado")
	case errors.Is(err, services.ErrInvalidStatus):
		c.Error(http.StatusUnprocessableEntity, "Status inválido")
	case errors.Is(err, services.ErrUnknownProduct):
		c.Error(http.StatusUnprocessableEntity, "Produto inválido")
	case errors.Is(err, services.ErrInvalidQuantity):
		c.Error(http.StatusUnprocessableEntity, "Quantidade inválida")
	default:
		logger.WithCtx(c.Context()).Error("orders: request failed", "error", err)
		c.Error(http.StatusInternalServerError, "Erro ao atualizar pedido")
	}
}
