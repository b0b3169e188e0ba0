package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/app/services"
	"github.com/bfriends/backend/internal/pkg/apperrors"
	"github.com/bfriends/backend/internal/pkg/logger"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController       *AuthController
	UserController       *UserController
	CommunityController  *CommunityController
	PostController       *PostController
	CommentController    *CommentController
	FeedController       *FeedController
	SuggestionController *SuggestionController
}

// NewControllers initializes all controllers
func NewControllers(svc *services.Services) *Controllers {
	return &Controllers{
		AuthController:       NewAuthController(svc.AuthService),
		UserController:       NewUserController(svc.UserService, svc.CommentService),
		CommunityController:  NewCommunityController(svc.CommunityService),
		PostController:       NewPostController(svc.PostService, svc.VoteService),
		CommentController:    NewCommentController(svc.CommentService),
		FeedController:       NewFeedController(svc.FeedService),
		SuggestionController: NewSuggestionController(svc.SuggestionService),
	}
}

// respondError translates a service error into the standard error envelope.
// Unexpected errors are logged server-side and reported without internals.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := dto.ErrorCodeInternalServer
	message := "An unexpected error occurred"

	switch {
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		apperrors.ErrCommunityNameTooShort,
		apperrors.ErrEmptyTitle,
		apperrors.ErrEmptyComment):
		status = http.StatusBadRequest
		code = dto.ErrorCodeValidationFailed
		message = err.Error()

	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		code = dto.ErrorCodeInvalidCredentials
		message = "Invalid email or password"

	case apperrors.Is(err, apperrors.ErrTokenExpired):
		status = http.StatusUnauthorized
		code = dto.ErrorCodeExpiredToken
		message = "Token has expired"

	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrTokenRevoked):
		status = http.StatusUnauthorized
		code = dto.ErrorCodeInvalidToken
		message = "Invalid token"

	case apperrors.Is(err, apperrors.ErrUnauthenticated):
		status = http.StatusUnauthorized
		code = dto.ErrorCodeUnauthorized
		message = "Authentication required"

	case apperrors.Is(err, apperrors.ErrPermissionDenied):
		status = http.StatusForbidden
		code = dto.ErrorCodeForbidden
		message = err.Error()

	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrCommunityNotFound,
		apperrors.ErrPostNotFound,
		apperrors.ErrCommentNotFound):
		status = http.StatusNotFound
		code = dto.ErrorCodeResourceNotFound
		message = err.Error()

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrHandleTaken,
		apperrors.ErrCommunityAlreadyExists):
		status = http.StatusConflict
		code = dto.ErrorCodeConflict
		message = err.Error()

	default:
		logger.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
	}

	errorDetail := dto.NewErrorDetail(code, message)
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Field != "" {
		errorDetail = errorDetail.WithField(customErr.Field)
	}

	ctx.JSON(status, dto.NewErrorResponse(errorDetail))
}

// respondBindError reports a request body that failed binding
func respondBindError(ctx *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
	errorDetail = errorDetail.WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// currentUserID reads the authenticated user set by the JWT middleware
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	value, exists := ctx.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// requireUserID reads the authenticated user or writes a 401 response
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := currentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return userID, true
}

// optionalUserID returns the viewer's ID when the request carries a valid
// token, nil otherwise. Used on endpoints readable without signing in.
func optionalUserID(ctx *gin.Context) *uuid.UUID {
	if userID, ok := currentUserID(ctx); ok {
		return &userID
	}
	return nil
}
