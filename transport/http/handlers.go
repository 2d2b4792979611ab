package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/aio/core"
	"github.com/layer-3/aio/observability"
	"github.com/layer-3/aio/service"
)

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	authService *service.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
	}
}

// Me returns the identity established by the gate
func (h *AuthHandlers) Me(c *gin.Context) {
	id := identityFrom(c)
	if id == nil {
		c.JSON(http.StatusOK, success(gin.H{"authenticated": false}))
		return
	}

	c.JSON(http.StatusOK, success(gin.H{
		"authenticated": true,
		"subject":       id.Subject,
		"username":      id.Username,
		"expires_at":    id.ExpiresAt,
	}))
}

// Logout revokes the caller's token
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), identityFrom(c)); err != nil {
		c.JSON(http.StatusInternalServerError, failure(CodeServerError, "Failed to logout"))
		return
	}

	observability.LogoutsTotal.Inc()
	c.JSON(http.StatusOK, success(gin.H{"message": "Logged out"}))
}

// AreaHandlers exposes system area management
type AreaHandlers struct {
	areas *service.AreaService
}

// NewAreaHandlers creates area handlers
func NewAreaHandlers(areas *service.AreaService) *AreaHandlers {
	return &AreaHandlers{areas: areas}
}

type areaRequest struct {
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name" binding:"required"`
	ParentID  string `json:"parent_id"`
	ParentIDs string `json:"parent_ids"`
	Type      string `json:"type"`
	Sort      int64  `json:"sort"`
	Remark    string `json:"remark"`
	Flag      string `json:"flag"`
}

func (r areaRequest) toArea(id string) *core.Area {
	return &core.Area{
		ID:        id,
		Code:      r.Code,
		Name:      r.Name,
		ParentID:  r.ParentID,
		ParentIDs: r.ParentIDs,
		Type:      r.Type,
		Sort:      r.Sort,
		Remark:    r.Remark,
		Flag:      r.Flag,
	}
}

func filterFrom(c *gin.Context) core.AreaFilter {
	return core.AreaFilter{
		Flag:     c.Query("flag"),
		Type:     c.Query("type"),
		ParentID: c.Query("parent_id"),
	}
}

// List returns all areas matching the query filter
func (h *AreaHandlers) List(c *gin.Context) {
	areas, err := h.areas.LoadAllListBy(c.Request.Context(), filterFrom(c))
	if err != nil {
		writeAreaError(c, err)
		return
	}
	c.JSON(http.StatusOK, success(areas))
}

// Page returns one page of areas
func (h *AreaHandlers) Page(c *gin.Context) {
	pageNum, err := strconv.Atoi(c.DefaultQuery("page_num", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, failure(CodeInvalidInput, "Invalid page_num"))
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(service.DefaultPageSize)))
	if err != nil {
		c.JSON(http.StatusBadRequest, failure(CodeInvalidInput, "Invalid page_size"))
		return
	}

	page, err := h.areas.FindPage(c.Request.Context(), pageNum, pageSize, filterFrom(c))
	if err != nil {
		writeAreaError(c, err)
		return
	}
	c.JSON(http.StatusOK, success(page))
}

func (h *AreaHandlers) Get(c *gin.Context) {
	area, err := h.areas.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeAreaError(c, err)
		return
	}
	c.JSON(http.StatusOK, success(area))
}

func (h *AreaHandlers) GetByCode(c *gin.Context) {
	area, err := h.areas.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeAreaError(c, err)
		return
	}
	c.JSON(http.StatusOK, success(area))
}

func (h *AreaHandlers) Create(c *gin.Context) {
	var req areaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failure(CodeInvalidInput, "Invalid request"))
		return
	}

	area, err := h.areas.Save(c.Request.Context(), req.toArea(""))
	if err != nil {
		writeAreaError(c, err)
		return
	}
	c.JSON(http.StatusCreated, success(area))
}

func (h *AreaHandlers) Update(c *gin.Context) {
	var req areaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failure(CodeInvalidInput, "Invalid request"))
		return
	}

	area, err := h.areas.Save(c.Request.Context(), req.toArea(c.Param("id")))
	if err != nil {
		writeAreaError(c, err)
		return
	}
	c.JSON(http.StatusOK, success(area))
}

func (h *AreaHandlers) Delete(c *gin.Context) {
	if err := h.areas.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeAreaError(c, err)
		return
	}
	c.JSON(http.StatusOK, success(nil))
}

// writeAreaError maps area errors to status codes
func writeAreaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrAreaNotFound):
		c.JSON(http.StatusNotFound, failure(CodeNotFound, "Area not found"))
	case errors.Is(err, core.ErrAreaConflict):
		c.JSON(http.StatusConflict, failure(CodeConflict, "Area code already exists"))
	case errors.Is(err, core.ErrAreaInvalid):
		c.JSON(http.StatusBadRequest, failure(CodeInvalidInput, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, failure(CodeServerError, "Internal error"))
	}
}
