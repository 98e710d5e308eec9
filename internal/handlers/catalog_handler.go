package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saiindkan/sweets-n-snacks-production/internal/httpx"
	"github.com/saiindkan/sweets-n-snacks-production/internal/repository"
)

type CatalogHandler struct {
	products *repository.ProductRepository
}

func NewCatalogHandler(products *repository.ProductRepository) *CatalogHandler {
	return &CatalogHandler{products: products}
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		FeaturedOnly:  c.QueryBool("featured"),
		AvailableOnly: c.QueryBool("available"),
	}

	if categoryStr := c.Query("category"); categoryStr != "" {
		categoryID, err := uuid.Parse(categoryStr)
		if err != nil {
			return httpx.BadRequestResponse(c, "Invalid category ID", map[string]interface{}{
				"category": categoryStr,
			})
		}
		filter.CategoryID = categoryID
	}

	products, err := h.products.ListProducts(filter)
	if err != nil {
		return httpx.InternalServerErrorResponse(c, "Products retrieval failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return httpx.SuccessResponse(c, "Products retrieved successfully", products)
}

func (h *CatalogHandler) GetProductByID(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpx.BadRequestResponse(c, "Invalid product ID", nil)
	}

	product, err := h.products.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return httpx.NotFoundResponse(c, "Product not found")
		}
		return httpx.InternalServerErrorResponse(c, "Product retrieval failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return httpx.SuccessResponse(c, "Product retrieved successfully", product)
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.products.ListCategories()
	if err != nil {
		return httpx.InternalServerErrorResponse(c, "Categories retrieval failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return httpx.SuccessResponse(c, "Categories retrieved successfully", categories)
}
