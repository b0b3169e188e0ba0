package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/app/services"
)

// SuggestionController handles friend suggestion endpoints
type SuggestionController struct {
	suggestionService *services.SuggestionService
}

// NewSuggestionController creates a new SuggestionController
func NewSuggestionController(suggestionService *services.SuggestionService) *SuggestionController {
	return &SuggestionController{suggestionService: suggestionService}
}

// GetFriendSuggestions handles GET /suggestions/friends
func (c *SuggestionController) GetFriendSuggestions(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	suggestions, err := c.suggestionService.GetSuggestions(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(suggestions))
}
