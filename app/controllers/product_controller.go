package controllers

import (
	"net/http"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/repositories"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/ctx"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/logger"
)

// ProductController serves the public menu for the ordering channel.
type ProductController struct {
	products *repositories.ProductRepository
}

func NewProductController(products *repositories.ProductRepository) *ProductController {
	return &ProductController{products: products}
}

// Index handles GET /api/products: every available product, name order.
func (p *ProductController) Index(c *ctx.Context) {
	products, err := p.products.Available()
	if err != nil {
		logger.WithCtx(c.Context()).Error("products: list failed", "error", err)
		c.Error(http.StatusInternalServerError, "Erro ao carregar o cardápio")
		return
	}
	c.Success(products)
}
