package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
)

func TestMenuListsOnlyAvailableProducts(t *testing.T) {
	h := newHarness(t)

	products := []models.Product{
		{Name: "X-Salada", Price: 21, Available: true},
		{Name: "Batata Frita", Price: 12, Available: true},
		{Name: "Suco Natural", Price: 9, Available: false},
	}
	require.NoError(t, h.db.Create(&products).Error)

	rec := h.do(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// Alphabetical, unavailable items excluded, no auth required.
	require.Len(t, body.Data, 2)
	assert.Equal(t, "Batata Frita", body.Data[0].Name)
	assert.Equal(t, "X-Salada", body.Data[1].Name)
	assert.NotContains(t, rec.Body.String(), "Suco Natural")
}
