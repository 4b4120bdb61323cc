package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/category"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
)

// CategoryController handles category catalog endpoints.
type CategoryController struct {
	listUseCase *category.ListCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(listUseCase *category.ListCategoriesUseCase) *CategoryController {
	return &CategoryController{
		listUseCase: listUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var query dto.ListCategoriesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidStatisticsRange), err)
		return
	}

	kind := entity.CategoryKind(query.Kind)
	if kind == "" {
		kind = entity.CategoryKindExpense
	}

	input := category.ListCategoriesInput{
		UserID: userID,
		Kind:   kind,
	}
	var err error
	if input.StartDate, err = optionalDate(query.StartDate); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidStatisticsRange), err)
		return
	}
	if input.EndDate, err = optionalDate(query.EndDate); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidStatisticsRange), err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		var catErr *domainerror.CategoryError
		if errors.As(err, &catErr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: catErr.Message,
				Code:  string(catErr.Code),
			})
			return
		}
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(string(kind), output))
}
