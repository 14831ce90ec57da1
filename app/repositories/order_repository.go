package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/orm"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FetchAll returns every order with items and products attached, newest first.
func (r *OrderRepository) FetchAll() ([]models.Order, error) {
	var orders []models.Order
	err := orm.With(r.db).
		Model(&models.Order{}).
		Preload("Items.Product").
		Order("created_at desc").
		Get(&orders)
	return orders, err
}

// FetchByID returns a single order with items and products attached.
func (r *OrderRepository) FetchByID(id string) (models.Order, error) {
	var order models.Order
	err := orm.With(r.db).
		Model(&models.Order{}).
		Preload("Items.Product").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// UpdateStatus sets status and refreshes updated_at on a single order.
// Returns gorm.ErrRecordNotFound when no row matched.
func (r *OrderRepository) UpdateStatus(id, status string) error {
	affected, err := orm.With(r.db).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if err != nil {
		return err
	}
	if affected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Create persists an order together with its items.
func (r *OrderRepository) Create(order *models.Order) error {
	return orm.With(r.db).Create(order)
}

// Delete removes an order and its items. Returns gorm.ErrRecordNotFound
// when no row matched.
func (r *OrderRepository) Delete(id string) error {
	if _, err := orm.With(r.db).Where("order_id = ?", id).Delete(&models.OrderItem{}); err != nil {
		return err
	}
	affected, err := orm.With(r.db).Where("id = ?", id).Delete(&models.Order{})
	if err != nil {
		return err
	}
	if affected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
