package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/repositories"
	"github.com/MatheusTerradasDEV/ChapaQuente/internal/board"
	"github.com/MatheusTerradasDEV/ChapaQuente/internal/receipt"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/logger"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/metrics"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/storage"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/workerpool"
)

var (
	ErrOrderNotFound   = errors.New("orders: order not found")
	ErrInvalidStatus   = errors.New("orders: invalid status")
	ErrUnknownProduct  = errors.New("orders: unknown product")
	ErrInvalidQuantity = errors.New("orders: quantity must be at least 1")
)

// OrderService owns order mutations. Every write follows the same contract:
// the database write happens first, and only on success is the board patched
// through the change feed. A failed write leaves the board untouched.
type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	board    *board.Board
	pool     *workerpool.Pool

	restaurantName string
}

func NewOrderService(
	orders *repositories.OrderRepository,
	products *repositories.ProductRepository,
	b *board.Board,
	pool *workerpool.Pool,
	restaurantName string,
) *OrderService {
	return &OrderService{
		orders:         orders,
		products:       products,
		board:          b,
		pool:           pool,
		restaurantName: restaurantName,
	}
}

// ChangeStatus moves an order to a new status. The status must be one of
// the five recognised stages.
func (s *OrderService) ChangeStatus(id, status string) error {
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}

	if err := s.orders.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	logger.Info("orders: status changed", "order_id", id, "status", status)

	s.board.Feed().Update(&models.Order{
		ID:        id,
		Status:    status,
		UpdatedAt: time.Now(),
	})
	return nil
}

// AcceptAndPrint forces the order to accepted and renders its print
// document. If the status write fails, nothing is printed. The plain-text
// rendition is archived in the background; a full archive queue only drops
// the copy, never the print.
func (s *OrderService) AcceptAndPrint(id string) (string, error) {
	if err := s.ChangeStatus(id, models.StatusAccepted); err != nil {
		return "", err
	}

	order, err := s.orders.FetchByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrOrderNotFound
		}
		return "", err
	}

	doc, err := receipt.HTML(&order, s.restaurantName)
	if err != nil {
		return "", err
	}

	s.archiveReceipt(order)
	return doc, nil
}

func (s *OrderService) archiveReceipt(order models.Order) {
	text := receipt.Text(&order, s.restaurantName)
	path := fmt.Sprintf("receipts/%s/%s.txt", order.CreatedAt.Format("2006/01"), order.ID)

	err := s.pool.Submit(func() {
		if err := storage.Put(path, []byte(text)); err != nil {
			logger.Error("orders: archive receipt", "order_id", order.ID, "error", err)
			metrics.ReceiptsArchived.WithLabelValues("error").Inc()
			return
		}
		metrics.ReceiptsArchived.WithLabelValues("ok").Inc()
	})
	if err != nil {
		logger.Warn("orders: receipt archive skipped", "order_id", order.ID, "error", err)
		metrics.ReceiptsArchived.WithLabelValues("dropped").Inc()
	}
}

// IntakeItem is one requested line of a new order.
type IntakeItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,numeric,gte=1"`
}

// IntakeInput is a new order as submitted by the ordering channel.
type IntakeInput struct {
	CustomerName string       `json:"customer_name" validate:"required,min=2,max=255"`
	Phone        string       `json:"phone" validate:"required,digits=11"`
	DeliveryType string       `json:"delivery_type" validate:"required,in=delivery,pickup"`
	Address      string       `json:"address" validate:"nullable,max=500"`
	Items        []IntakeItem `json:"items" validate:"required"`
}

// Intake creates a new order with product prices captured at order time,
// then announces it on the change feed.
func (s *OrderService) Intake(in IntakeInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("orders: intake: %w", ErrUnknownProduct)
	}

	order := models.Order{
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		DeliveryType: in.DeliveryType,
		Status:       models.StatusPending,
	}
	if in.DeliveryType == models.DeliveryTypeDelivery {
		order.Address = in.Address
	}

	for _, line := range in.Items {
		// The edge validates this too; orders must never carry a
		// non-positive quantity regardless of the caller.
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		product, err := s.products.FindByID(line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownProduct
			}
			return nil, err
		}
		item := models.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		}
		order.Items = append(order.Items, item)
		order.Total += item.Subtotal()
	}

	if err := s.orders.Create(&order); err != nil {
		return nil, err
	}

	s.board.Feed().Insert(order.ID)
	return &order, nil
}

// Delete removes an order and announces the removal on the change feed.
func (s *OrderService) Delete(id string) error {
	if err := s.orders.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	s.board.Feed().Delete(id)
	return nil
}
