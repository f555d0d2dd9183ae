package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cluster-dashboard-backend/internal/model"
	"cluster-dashboard-backend/internal/schema"
)

type GraphQLHandler struct {
	schema *schema.Schema
}

func NewGraphQLHandler(schema *schema.Schema) *GraphQLHandler {
	return &GraphQLHandler{
		schema: schema,
	}
}

// Serve always answers 200 once the body parses; operation errors travel in
// the result's errors list.
func (h *GraphQLHandler) Serve(c *gin.Context) {
	var req model.GraphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []gin.H{{"message": "Invalid GraphQL request: " + err.Error()}},
		})
		return
	}

	result := h.schema.Execute(c.Request.Context(), req)
	c.JSON(http.StatusOK, result)
}
