package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/orm"
)

const productCacheTTL = 60 * time.Second

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id string) (models.Product, error) {
	var product models.Product
	err := orm.With(r.db).Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// Available returns every product currently on the menu, cached briefly
// since the catalogue changes rarely.
func (r *ProductRepository) Available() ([]models.Product, error) {
	var products []models.Product
	err := orm.With(r.db).
		Model(&models.Product{}).
		Where("available = ?", true).
		Order("name asc").
		Cache("chapaquente:products:available", productCacheTTL, &products)
	return products, err
}

// Create persists a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	return orm.With(r.db).Create(p)
}
