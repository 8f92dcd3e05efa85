package category

import (
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/category"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	categorysvc "github.com/amirasaad/fintrack/pkg/service/category"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

const saveFailed = "Error al guardar la categoría"

// Routes registers the category endpoints under /categories.
func Routes(
	app *fiber.App,
	categorySvc *categorysvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
	idempotency fiber.Handler,
) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/categories", protected, ListCategories(categorySvc, authSvc))
	app.Post("/categories", protected, idempotency, CreateCategory(categorySvc, authSvc))
	app.Put("/categories/:id", protected, UpdateCategory(categorySvc, authSvc))
	app.Delete("/categories/:id", protected, DeleteCategory(categorySvc, authSvc))
}

// ListCategories returns the caller's categories, optionally filtered by
// ?type=income|expense.
// @Summary List categories
// @Tags categories
// @Produce json
// @Param type query string false "income or expense"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /categories [get]
// @Security Bearer
func ListCategories(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		cats, err := categorySvc.List(c.UserContext(), userID, category.Type(c.Query("type")))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list categories", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Categories", ToCategoryDTOs(cats))
	}
}

// CreateCategory adds a category.
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /categories [post]
// @Security Bearer
func CreateCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		input, err := common.BindAndValidate[CreateCategoryRequest](c)
		if input == nil {
			return err
		}
		cat, err := categorySvc.Create(c.UserContext(), userID, input.Name, category.Type(input.Type))
		if err != nil {
			return common.ProblemDetailsJSON(c, saveFailed, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Category created", ToCategoryDTO(cat))
	}
}

// UpdateCategory renames a category or changes its type.
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /categories/{id} [put]
// @Security Bearer
func UpdateCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		id, err := common.ParseID(c)
		if err != nil {
			return common.InvalidID(c)
		}
		input, err := common.BindAndValidate[UpdateCategoryRequest](c)
		if input == nil {
			return err
		}
		var kind *category.Type
		if input.Type != nil {
			k := category.Type(*input.Type)
			kind = &k
		}
		cat, err := categorySvc.Update(c.UserContext(), userID, id, input.Name, kind)
		if err != nil {
			return common.ProblemDetailsJSON(c, saveFailed, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category updated", ToCategoryDTO(cat))
	}
}

// DeleteCategory removes a category. Transactions that used it become
// uncategorized.
// @Summary Delete a category
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} common.ProblemDetails
// @Router /categories/{id} [delete]
// @Security Bearer
func DeleteCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		id, err := common.ParseID(c)
		if err != nil {
			return common.InvalidID(c)
		}
		if err := categorySvc.Delete(c.UserContext(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Error al eliminar la categoría", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "Category deleted", nil)
	}
}
