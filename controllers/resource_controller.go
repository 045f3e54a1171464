package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"agrinet-api/utils"
)

// ResourceController is the generic CRUD handler set shared by the uniform
// resource types (communities, reports, tags, settings, ...). A nil
// validator skips body validation (the v1 surface); the v2 surface passes
// one in and surfaces failures as a field-level error list.
type ResourceController[T any] struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewResourceController[T any](db *gorm.DB, validate *validator.Validate) *ResourceController[T] {
	return &ResourceController[T]{
		db:       db,
		validate: validate,
	}
}

func (rc *ResourceController[T]) Create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := rc.validateItem(&item); len(errs) > 0 {
		utils.SendValidationErrors(c, errs)
		return
	}

	if err := rc.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create record"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (rc *ResourceController[T]) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	var total int64
	rc.db.Model(new(T)).Count(&total)

	var items []T
	if err := rc.db.Offset(offset).Limit(limit).Order("id ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records"})
		return
	}

	utils.SendPaginated(c, items, page, limit, total)
}

func (rc *ResourceController[T]) GetByID(c *gin.Context) {
	id := c.Param("id")

	var item T
	if err := rc.db.First(&item, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (rc *ResourceController[T]) Update(c *gin.Context) {
	id := c.Param("id")

	var existing T
	if err := rc.db.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var payload T
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := rc.validateItem(&payload); len(errs) > 0 {
		utils.SendValidationErrors(c, errs)
		return
	}

	// Update through the keys actually sent so zero values (false, 0, "")
	// overwrite the stored row while omitted fields stay untouched.
	var changes map[string]interface{}
	if err := json.Unmarshal(body, &changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	delete(changes, "id")
	delete(changes, "created_at")
	delete(changes, "updated_at")

	if len(changes) > 0 {
		if err := rc.db.Model(&existing).Updates(changes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update record"})
			return
		}
	}

	rc.db.First(&existing, "id = ?", id)
	c.JSON(http.StatusOK, existing)
}

func (rc *ResourceController[T]) Delete(c *gin.Context) {
	id := c.Param("id")

	result := rc.db.Delete(new(T), "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}

func (rc *ResourceController[T]) validateItem(item *T) []utils.FieldError {
	if rc.validate == nil {
		return nil
	}

	err := rc.validate.Struct(item)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []utils.FieldError{{Field: "", Message: err.Error()}}
	}

	errs := make([]utils.FieldError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		errs = append(errs, utils.FieldError{
			Field:   fieldError.Field(),
			Message: fieldErrorMessage(fieldError),
		})
	}
	return errs
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "uri":
		return fe.Field() + " must be a valid URL"
	default:
		return fe.Field() + " is invalid"
	}
}
