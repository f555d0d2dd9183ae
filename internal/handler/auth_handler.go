package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cluster-dashboard-backend/internal/model"
	"cluster-dashboard-backend/internal/resolver"
)

type AuthHandler struct {
	router *resolver.Router
}

func NewAuthHandler(router *resolver.Router) *AuthHandler {
	return &AuthHandler{
		router: router,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	payload, err := resolver.Call[*model.AuthPayload](c.Request.Context(), h.router, resolver.OpLogin, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, payload)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	payload, err := resolver.Call[*model.AuthPayload](c.Request.Context(), h.router, resolver.OpRegister, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, payload)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ok, err := resolver.Call[bool](c.Request.Context(), h.router, resolver.OpLogout, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, ok)
}

// Me answers with null data for anonymous callers, like the GraphQL field.
func (h *AuthHandler) Me(c *gin.Context) {
	me, err := resolver.Call[*model.PublicUser](c.Request.Context(), h.router, resolver.OpMe, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	if me == nil {
		respondData(c, http.StatusOK, nil)
		return
	}
	respondData(c, http.StatusOK, me)
}

func (h *AuthHandler) Users(c *gin.Context) {
	users, err := resolver.Call[[]*model.PublicUser](c.Request.Context(), h.router, resolver.OpUsers, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, users)
}
