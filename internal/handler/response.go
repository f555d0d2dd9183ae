package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cluster-dashboard-backend/internal/model"
	"cluster-dashboard-backend/pkg/utils"
)

func respondError(c *gin.Context, err error) {
	pub := utils.Public(err)
	c.JSON(utils.HTTPStatus(pub), model.ErrorResponse{
		Success: false,
		Code:    string(pub.Kind),
		Message: pub.Message,
		Details: pub.Details,
	})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Success: false,
		Code:    string(utils.KindValidation),
		Message: "Invalid request body",
		Details: err.Error(),
	})
}

func respondNotFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, model.ErrorResponse{
		Success: false,
		Code:    "NOT_FOUND",
		Message: what + " not found",
	})
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, model.DataResponse{Success: true, Data: data})
}

func respondUnauthenticated(c *gin.Context) {
	respondError(c, utils.NewUnauthenticatedError())
}
