package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cluster-dashboard-backend/internal/model"
	"cluster-dashboard-backend/internal/resolver"
)

type NodeHandler struct {
	router *resolver.Router
}

func NewNodeHandler(router *resolver.Router) *NodeHandler {
	return &NodeHandler{
		router: router,
	}
}

func (h *NodeHandler) List(c *gin.Context) {
	nodes, err := resolver.Call[[]*model.ClusterNode](c.Request.Context(), h.router, resolver.OpClusterNodes, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, nodes)
}

func (h *NodeHandler) Get(c *gin.Context) {
	node, err := resolver.Call[*model.ClusterNode](c.Request.Context(), h.router, resolver.OpClusterNode,
		model.NodeIDRequest{ID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	if node == nil {
		respondNotFound(c, "Node")
		return
	}
	respondData(c, http.StatusOK, node)
}

func (h *NodeHandler) Create(c *gin.Context) {
	var input model.NodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}

	node, err := resolver.Call[*model.ClusterNode](c.Request.Context(), h.router, resolver.OpAddClusterNode, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, node)
}

func (h *NodeHandler) Update(c *gin.Context) {
	var input model.NodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}

	node, err := resolver.Call[*model.ClusterNode](c.Request.Context(), h.router, resolver.OpUpdateClusterNode,
		model.UpdateNodeRequest{ID: c.Param("id"), Input: input})
	if err != nil {
		respondError(c, err)
		return
	}
	if node == nil {
		respondNotFound(c, "Node")
		return
	}
	respondData(c, http.StatusOK, node)
}

func (h *NodeHandler) Delete(c *gin.Context) {
	removed, err := resolver.Call[bool](c.Request.Context(), h.router, resolver.OpRemoveClusterNode,
		model.NodeIDRequest{ID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	if !removed {
		respondNotFound(c, "Node")
		return
	}
	respondData(c, http.StatusOK, true)
}

func (h *NodeHandler) UpdateStatus(c *gin.Context) {
	var body struct {
		Status *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	node, err := resolver.Call[*model.ClusterNode](c.Request.Context(), h.router, resolver.OpUpdateNodeStatus,
		model.UpdateStatusRequest{ID: c.Param("id"), Status: body.Status})
	if err != nil {
		respondError(c, err)
		return
	}
	if node == nil {
		respondNotFound(c, "Node")
		return
	}
	respondData(c, http.StatusOK, node)
}
