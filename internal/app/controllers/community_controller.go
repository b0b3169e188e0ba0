package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/app/services"
)

// CommunityController handles community endpoints
type CommunityController struct {
	communityService *services.CommunityService
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService *services.CommunityService) *CommunityController {
	return &CommunityController{communityService: communityService}
}

// Create handles POST /communities
func (c *CommunityController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	community, err := c.communityService.Create(ctx.Request.Context(), userID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(community))
}

// GetByName handles GET /communities/:name
func (c *CommunityController) GetByName(ctx *gin.Context) {
	community, err := c.communityService.GetByName(ctx.Request.Context(), ctx.Param("name"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community))
}

// UpdateDescription handles PATCH /communities/:name/description
func (c *CommunityController) UpdateDescription(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCommunityDescriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	community, err := c.communityService.UpdateDescription(
		ctx.Request.Context(), userID, ctx.Param("name"), req.Description)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community))
}
