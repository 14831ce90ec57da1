package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
)

func TestIntakeRejectsInvalidItemsAtTheEdge(t *testing.T) {
	h := newHarness(t)

	product := models.Product{Name: "X-Burguer", Price: 18.5, Available: true}
	require.NoError(t, h.db.Create(&product).Error)

	// Negative quantity never reaches the database.
	rec := h.do(t, http.MethodPost, "/api/orders",
		`{"customer_name":"João Pereira","phone":"11988887777","delivery_type":"pickup",
		  "items":[{"product_id":"`+product.ID+`","quantity":-3}]}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "items.0.quantity")

	// Missing product_id on a line.
	rec = h.do(t, http.MethodPost, "/api/orders",
		`{"customer_name":"João Pereira","phone":"11988887777","delivery_type":"pickup",
		  "items":[{"quantity":1}]}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "items.0.product_id")

	// No items at all.
	rec = h.do(t, http.MethodPost, "/api/orders",
		`{"customer_name":"João Pereira","phone":"11988887777","delivery_type":"pickup","items":[]}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	var count int64
	require.NoError(t, h.db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
