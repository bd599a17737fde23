package routes

import (
	"shopping-list/internal/handlers"
	"shopping-list/internal/repository"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, store repository.ProductStore) {
	h := handlers.NewProductHandler(store)

	products := router.Group("/products")
	{
		products.GET("", h.GetProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.PUT("/:id/toggle-marked", h.ToggleMarked)
		products.POST("/:id/upload-image", h.UploadImage)
		products.GET("/:id/image", h.GetImage)
	}
}
