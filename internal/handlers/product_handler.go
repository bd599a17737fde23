package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopping-list/internal/cache"
	"shopping-list/internal/logger"
	"shopping-list/internal/models"
	"shopping-list/internal/repository"
)

const (
	listCacheKey = "products:list"

	productCacheTTL = 5 * time.Minute
	listCacheTTL    = 2 * time.Minute

	// Uploads larger than this are rejected before touching the store.
	maxImageBytes = 10 << 20
)

// Machine-readable error categories returned alongside the message.
const (
	codeValidation = "validation_error"
	codeNotFound   = "not_found"
	codeInternal   = "internal_error"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type ProductHandler struct {
	store repository.ProductStore
	cache *cache.Cache
	log   *zap.Logger
}

func NewProductHandler(store repository.ProductStore) *ProductHandler {
	return &ProductHandler{
		store: store,
		cache: cache.Get(),
		log:   logger.Get(),
	}
}

// CreateProduct handles POST /products.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeValidation})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeValidation})
		return
	}

	product := req.Product()
	if err := h.store.Insert(c.Request.Context(), &product); err != nil {
		h.serverError(c, "create", "", err)
		return
	}

	h.cache.Delete(listCacheKey)

	c.JSON(http.StatusCreated, product)
}

// GetProducts handles GET /products.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	if cached, found := h.cache.GetValue(listCacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.store.FindAll(c.Request.Context())
	if err != nil {
		h.serverError(c, "list", "", err)
		return
	}

	h.cache.Set(listCacheKey, products, listCacheTTL)
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	if cached, found := h.cache.GetValue(productCacheKey(id)); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	product, err := h.store.FindByID(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, "get", id, err)
		return
	}

	h.cache.Set(productCacheKey(id), product, productCacheTTL)
	c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /products/:id. Only the fields present in the
// payload change; everything else, the marked flag included, stays as stored.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeValidation})
		return
	}

	if err := update.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeValidation})
		return
	}

	if update.IsEmpty() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no valid fields to update", Code: codeValidation})
		return
	}

	product, err := h.store.Update(c.Request.Context(), id, update)
	if err != nil {
		h.storeError(c, "update", id, err)
		return
	}

	h.invalidate(id)
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id. Deleting an already-absent
// identifier is NotFound, not success.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.storeError(c, "delete", id, err)
		return
	}

	h.invalidate(id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ToggleMarked handles PUT /products/:id/toggle-marked. The endpoint is a
// pure flip of the stored value; there is no way to pass a target state.
func (h *ProductHandler) ToggleMarked(c *gin.Context) {
	id := c.Param("id")

	product, err := h.store.ToggleMarked(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, "toggle", id, err)
		return
	}

	h.invalidate(id)
	c.JSON(http.StatusOK, product)
}

// UploadImage handles POST /products/:id/upload-image. The blob replaces any
// previous image; there is never more than one per product.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id := c.Param("id")

	// Confirm the record exists before reading the upload.
	if _, err := h.store.FindByID(c.Request.Context(), id); err != nil {
		h.storeError(c, "upload-image", id, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image file is required", Code: codeValidation})
		return
	}
	if file.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image is too large", Code: codeValidation})
		return
	}

	src, err := file.Open()
	if err != nil {
		h.serverError(c, "upload-image", id, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		h.serverError(c, "upload-image", id, err)
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	product, err := h.store.AttachImage(c.Request.Context(), id, data, contentType)
	if err != nil {
		h.storeError(c, "upload-image", id, err)
		return
	}

	h.invalidate(id)
	c.JSON(http.StatusOK, product)
}

// GetImage handles GET /products/:id/image. A record without a stored image
// is indistinguishable from a missing record: both are NotFound.
func (h *ProductHandler) GetImage(c *gin.Context) {
	id := c.Param("id")

	product, err := h.store.FindByID(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, "get-image", id, err)
		return
	}

	if len(product.Image) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found", Code: codeNotFound})
		return
	}

	c.Data(http.StatusOK, product.ImageType, product.Image)
}

func (h *ProductHandler) invalidate(id string) {
	h.cache.Delete(productCacheKey(id))
	h.cache.Delete(listCacheKey)
}

// storeError maps store outcomes onto the external error categories.
func (h *ProductHandler) storeError(c *gin.Context, op, id string, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID", Code: codeValidation})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found", Code: codeNotFound})
	default:
		h.serverError(c, op, id, err)
	}
}

// serverError logs the underlying failure with its operation context and
// returns a genericized message to the caller.
func (h *ProductHandler) serverError(c *gin.Context, op, id string, err error) {
	h.log.Error("store operation failed",
		zap.String("operation", op),
		zap.String("product_id", id),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: codeInternal})
}

func productCacheKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}
