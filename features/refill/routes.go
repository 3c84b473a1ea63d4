package refill

import (
	"net/http"

	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/roles"
	"github.com/RodolfoBonis/spooliq/features/refill/domain/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Routes registers the operator-triggered refill endpoint. There is no
// customer-facing order API in this system (spec §1 Non-goals); refills are
// admin-initiated only.
func Routes(route *gin.RouterGroup, useCase usecases.RefillUseCase, protectFactory func(handler gin.HandlerFunc, role string) gin.HandlerFunc) {
	refillRoutes := route.Group("/orders")
	{
		refillRoutes.POST("/:id/refill", protectFactory(createRefillHandler(useCase), roles.OperatorRole))
	}
}

func createRefillHandler(useCase usecases.RefillUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			httpErr := coreerrors.ValidationError("order id is not a valid uuid").ToHTTPError()
			c.JSON(httpErr.StatusCode, httpErr)
			return
		}

		result, err := useCase.CreateRefill(c.Request.Context(), orderID)
		if err != nil {
			if appErr, ok := err.(*coreerrors.AppError); ok {
				httpErr := appErr.ToHTTPError()
				c.JSON(httpErr.StatusCode, httpErr)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"refillOrderId": result.RefillOrderID,
			"refillNumber":  result.RefillNumber,
			"refillQty":     result.RefillQty,
		})
	}
}
