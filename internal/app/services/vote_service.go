package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/db"
	"github.com/bfriends/backend/internal/pkg/apperrors"
	"github.com/bfriends/backend/internal/pkg/logger"
)

// voteAction is what a vote request does to the stored vote row
type voteAction int

const (
	voteInsert voteAction = iota
	voteUpdate
	voteRemove
)

// resolveVote maps the viewer's existing vote and the requested direction to
// the row action and the score delta. Casting the same direction twice
// toggles the vote off; casting the opposite direction switches it, moving
// the score by two.
func resolveVote(existing *models.VoteDirection, requested models.VoteDirection) (voteAction, int64) {
	if existing == nil {
		if requested == models.VoteUp {
			return voteInsert, 1
		}
		return voteInsert, -1
	}
	if *existing == requested {
		if requested == models.VoteUp {
			return voteRemove, -1
		}
		return voteRemove, 1
	}
	if requested == models.VoteUp {
		return voteUpdate, 2
	}
	return voteUpdate, -2
}

// voteLedgerRepository is the slice of VoteRepository used by VoteService
type voteLedgerRepository interface {
	LockPost(ctx context.Context, tx pgx.Tx, postID int64) (int64, error)
	GetVoteForUpdate(ctx context.Context, tx pgx.Tx, postID int64, userID uuid.UUID) (*models.Vote, error)
	InsertVote(ctx context.Context, tx pgx.Tx, postID int64, userID uuid.UUID, direction models.VoteDirection) error
	UpdateVoteDirection(ctx context.Context, tx pgx.Tx, voteID int64, direction models.VoteDirection) error
	DeleteVote(ctx context.Context, tx pgx.Tx, voteID int64) error
	ApplyScoreDelta(ctx context.Context, tx pgx.Tx, postID int64, delta int64) (int64, error)
}

// voteTxRunner runs a function inside a database transaction
type voteTxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// VoteService applies votes to posts. Each cast runs in one transaction so the
// vote row and the post's denormalized score never drift apart.
type VoteService struct {
	voteRepo voteLedgerRepository
	txRunner voteTxRunner
	log      zerolog.Logger
}

// NewVoteService creates a new VoteService
func NewVoteService(voteRepo voteLedgerRepository, txRunner voteTxRunner) *VoteService {
	return &VoteService{
		voteRepo: voteRepo,
		txRunner: txRunner,
		log:      logger.WithComponent("vote_service"),
	}
}

// CastVote applies one vote request and returns the post's new score along
// with the viewer's resulting vote state.
func (s *VoteService) CastVote(ctx context.Context, postID int64, userID uuid.UUID, direction models.VoteDirection) (*dto.VoteResponse, error) {
	if !direction.Valid() {
		return nil, apperrors.NewValidationError("direction", "direction must be UP or DOWN")
	}

	var resp dto.VoteResponse
	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		// The post row lock serializes concurrent votes on the same post.
		if _, err := s.voteRepo.LockPost(ctx, tx, postID); err != nil {
			return err
		}

		existing, err := s.voteRepo.GetVoteForUpdate(ctx, tx, postID, userID)
		if err != nil {
			return err
		}

		var existingDirection *models.VoteDirection
		if existing != nil {
			existingDirection = &existing.Direction
		}
		action, delta := resolveVote(existingDirection, direction)

		switch action {
		case voteInsert:
			err = s.voteRepo.InsertVote(ctx, tx, postID, userID, direction)
		case voteUpdate:
			err = s.voteRepo.UpdateVoteDirection(ctx, tx, existing.ID, direction)
		case voteRemove:
			err = s.voteRepo.DeleteVote(ctx, tx, existing.ID)
		}
		if err != nil {
			return err
		}

		newScore, err := s.voteRepo.ApplyScoreDelta(ctx, tx, postID, delta)
		if err != nil {
			return err
		}

		resp.VoteScore = newScore
		if action != voteRemove {
			d := direction
			resp.ViewerVote = &d
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Int64("post_id", postID).
		Str("user_id", userID.String()).
		Int64("score", resp.VoteScore).
		Msg("Vote applied")
	return &resp, nil
}
