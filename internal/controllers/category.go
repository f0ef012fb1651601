package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

// CategoryEditable represents all user configurable parameters of a
// category.
type CategoryEditable struct {
	Name string              `json:"name" example:"Groceries"`
	Type models.CategoryType `json:"type" example:"expense"`
}

func OptionsCategoryDetail(c *gin.Context) {
	_, err := getOwnCategory(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// GetCategories returns all categories of the calling user, ordered by
// name.
func GetCategories(c *gin.Context) {
	var categories []models.Category
	err := models.DB.
		Where(&models.Category{UserID: auth.UserID(c)}).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategory returns a specific category.
func GetCategory(c *gin.Context) {
	category, err := getOwnCategory(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

// CreateCategory creates a new category for the calling user.
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	category := models.Category{
		UserID: auth.UserID(c),
		Name:   editable.Name,
		Type:   editable.Type,
	}

	err = models.DB.Create(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory updates an existing category. Only values to be updated
// need to be specified, everything else keeps its current value.
func UpdateCategory(c *gin.Context) {
	category, err := getOwnCategory(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	editable := CategoryEditable{
		Name: category.Name,
		Type: category.Type,
	}

	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	category.Name = editable.Name
	category.Type = editable.Type

	err = models.DB.Save(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

// CategoryDeletionBlocked is returned when a category cannot be deleted
// because transactions still reference it.
type CategoryDeletionBlocked struct {
	Error string `json:"error"`
	Count int64  `json:"count" example:"3"` // Number of transactions referencing the category
}

// DeleteCategory deletes a category. Deletion is blocked with a conflict
// while any transaction references the category.
func DeleteCategory(c *gin.Context) {
	category, err := getOwnCategory(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DeleteCategory(models.DB, category)
	if err != nil {
		var inUse models.CategoryInUseError
		if errors.As(err, &inUse) {
			c.JSON(http.StatusConflict, CategoryDeletionBlocked{
				Error: err.Error(),
				Count: inUse.Count,
			})
			return
		}

		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// getOwnCategory loads the category referenced in the URI, scoped to the
// calling user. Categories of other users are reported as missing.
func getOwnCategory(c *gin.Context) (models.Category, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Category{}, err
	}

	var category models.Category
	err = models.DB.First(&category, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}
