package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/app/services"
	"github.com/bfriends/backend/internal/pkg/helpers"
)

// FeedController handles feed and search endpoints
type FeedController struct {
	feedService *services.FeedService
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService *services.FeedService) *FeedController {
	return &FeedController{feedService: feedService}
}

func parseFeedParams(ctx *gin.Context) (rank dto.RankMode, page int) {
	rank = dto.ParseRankMode(ctx.DefaultQuery("rank", string(dto.RankRecent)))
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil {
		page = helpers.DefaultPage
	}
	page = helpers.ClampPage(page)
	return rank, page
}

// GetGlobalFeed handles GET /feed
func (c *FeedController) GetGlobalFeed(ctx *gin.Context) {
	rank, page := parseFeedParams(ctx)

	feed, err := c.feedService.GetGlobalFeed(ctx.Request.Context(), optionalUserID(ctx), rank, page)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(feed))
}

// GetCommunityFeed handles GET /communities/:name/feed
func (c *FeedController) GetCommunityFeed(ctx *gin.Context) {
	rank, page := parseFeedParams(ctx)

	feed, err := c.feedService.GetCommunityFeed(
		ctx.Request.Context(), optionalUserID(ctx), ctx.Param("name"), rank, page)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(feed))
}

// GetUserFeed handles GET /users/:username/posts, the profile posts tab
func (c *FeedController) GetUserFeed(ctx *gin.Context) {
	_, page := parseFeedParams(ctx)

	feed, err := c.feedService.GetUserFeed(
		ctx.Request.Context(), optionalUserID(ctx), ctx.Param("username"), page)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(feed))
}

// Search handles GET /search
func (c *FeedController) Search(ctx *gin.Context) {
	_, page := parseFeedParams(ctx)

	var communityName *string
	if name := ctx.Query("community"); name != "" {
		communityName = &name
	}

	result, err := c.feedService.Search(
		ctx.Request.Context(), optionalUserID(ctx), ctx.Query("q"), communityName, page)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
