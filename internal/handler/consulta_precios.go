package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 4 * time.Hour

// ConsultaPreciosHandler serves the price check used by the consumption
// flow at reception. Read-only, no side effects.
type ConsultaPreciosHandler struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

func NewConsultaPreciosHandler(repo repository.ProductoRepository, rdb *redis.Client) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{repo: repo, rdb: rdb}
}

// GetPrecioPorBarcode godoc
// @Summary Consulta de precio por codigo de barras
// @Tags precio
// @Produce json
// @Param barcode path string true "Codigo de barras"
// @Success 200 {object} dto.PrecioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{barcode} [get]
func (h *ConsultaPreciosHandler) GetPrecioPorBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	ctx := c.Request.Context()
	cacheKey := "precio:" + barcode

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PrecioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			resp.Source = "cache"
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss, query DB
	producto, err := h.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}

	resp := dto.PrecioResponse{
		ProductoID:   producto.ID.String(),
		CodigoBarras: producto.CodigoBarras,
		Nombre:       producto.Nombre,
		Precio:       producto.PrecioVenta,
		Source:       "db",
	}

	// 3. Populate cache, best effort
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
