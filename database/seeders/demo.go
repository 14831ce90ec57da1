package seeders

import (
	"time"

	"gorm.io/gorm"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/auth"
)

func init() {
	Register("products", SeedProducts)
	Register("demo_user", SeedDemoUser)
	Register("demo_orders", SeedDemoOrders)
}

// SeedProducts loads the starter menu. Running it twice is harmless: it
// skips when any product already exists.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "X-Burguer", Description: "Pão, hambúrguer e queijo", ImageURL: "/img/x-burguer.jpg", Price: 18.50, Available: true},
		{Name: "X-Salada", Description: "Pão, hambúrguer, queijo, alface e tomate", ImageURL: "/img/x-salada.jpg", Price: 21.00, Available: true},
		{Name: "X-Bacon", Description: "Pão, hambúrguer, queijo e bacon", ImageURL: "/img/x-bacon.jpg", Price: 24.00, Available: true},
		{Name: "Batata Frita", Description: "Porção média", ImageURL: "/img/batata-frita.jpg", Price: 12.00, Available: true},
		{Name: "Refrigerante Lata", Description: "350ml", ImageURL: "/img/refrigerante.jpg", Price: 6.00, Available: true},
		{Name: "Suco Natural", Description: "Copo 400ml", ImageURL: "/img/suco.jpg", Price: 9.00, Available: true},
	}
	return db.Create(&products).Error
}

// SeedDemoUser creates the demo admin account (phone 11999990000).
func SeedDemoUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("phone = ?", "11999990000").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashSecret("11999990000")
	if err != nil {
		return err
	}
	user := models.User{
		Name:       "Maria Silva",
		Phone:      "11999990000",
		Email:      "11999990000@temp.com",
		SecretHash: hash,
	}
	return db.Create(&user).Error
}

// SeedDemoOrders creates a couple of orders so the board is not empty on
// first boot.
func SeedDemoOrders(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var products []models.Product
	if err := db.Limit(2).Order("name asc").Find(&products).Error; err != nil {
		return err
	}
	if len(products) < 2 {
		return nil
	}

	orders := []models.Order{
		{
			CustomerName: "João Pereira",
			Phone:        "11988887777",
			DeliveryType: models.DeliveryTypeDelivery,
			Address:      "Rua das Flores, 123",
			Status:       models.StatusPending,
			CreatedAt:    time.Now().Add(-30 * time.Minute),
			Items: []models.OrderItem{
				{ProductID: products[0].ID, Quantity: 2, UnitPrice: products[0].Price},
				{ProductID: products[1].ID, Quantity: 1, UnitPrice: products[1].Price},
			},
		},
		{
			CustomerName: "Ana Costa",
			Phone:        "11977776666",
			DeliveryType: models.DeliveryTypePickup,
			Status:       models.StatusAccepted,
			CreatedAt:    time.Now().Add(-10 * time.Minute),
			Items: []models.OrderItem{
				{ProductID: products[1].ID, Quantity: 1, UnitPrice: products[1].Price},
			},
		},
	}
	for i := range orders {
		for _, item := range orders[i].Items {
			orders[i].Total += float64(item.Quantity) * item.UnitPrice
		}
	}
	return db.Create(&orders).Error
}
