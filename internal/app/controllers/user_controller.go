package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/app/services"
	"github.com/bfriends/backend/internal/pkg/helpers"
)

// commentsPageSize is the default page size of the profile comments tab
const commentsPageSize = 10

// UserController handles profile endpoints
type UserController struct {
	userService    *services.UserService
	commentService *services.CommentService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, commentService *services.CommentService) *UserController {
	return &UserController{
		userService:    userService,
		commentService: commentService,
	}
}

// GetMe handles GET /profile
func (c *UserController) GetMe(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.userService.GetOwnProfile(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateProfile handles PUT /profile. The same endpoint serves onboarding and
// later settings edits.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	profile, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateHandle handles PATCH /profile/username
func (c *UserController) UpdateHandle(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateHandleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	if err := c.userService.UpdateHandle(ctx.Request.Context(), userID, req.UserName); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Username updated"))
}

// UploadAvatar handles POST /profile/avatar
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		respondBindError(ctx, err)
		return
	}

	resp, err := c.userService.UploadAvatar(ctx.Request.Context(), userID, fileHeader)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetByHandle handles GET /users/:username
func (c *UserController) GetByHandle(ctx *gin.Context) {
	profile, err := c.userService.GetProfileByHandle(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// GetComments handles GET /users/:username/comments, the profile comments tab
func (c *UserController) GetComments(ctx *gin.Context) {
	profile, err := c.userService.GetProfileByHandle(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParamsWithSize(ctx, commentsPageSize)
	comments, err := c.commentService.ListByUser(ctx.Request.Context(), profile.ID, page, size)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}
