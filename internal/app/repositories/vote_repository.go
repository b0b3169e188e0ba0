package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/pkg/apperrors"
)

// VoteRepository handles database operations for votes. The mutating methods
// take a pgx.Tx so the vote row and the post score move in one transaction.
type VoteRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetUserVote returns a user's vote on a post, or nil when no vote exists
func (r *VoteRepository) GetUserVote(ctx context.Context, postID int64, userID uuid.UUID) (*models.Vote, error) {
	query := `
		SELECT id, post_id, user_id, direction, created_at
		FROM votes
		WHERE post_id = $1 AND user_id = $2
	`
	var vote models.Vote
	err := r.db.QueryRow(ctx, query, postID, userID).Scan(
		&vote.ID, &vote.PostID, &vote.UserID, &vote.Direction, &vote.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving vote: %w", err)
	}
	return &vote, nil
}

// LockPost acquires a row lock on the post inside the transaction and returns
// its current score. Concurrent votes on the same post serialize here.
func (r *VoteRepository) LockPost(ctx context.Context, tx pgx.Tx, postID int64) (int64, error) {
	var score int64
	err := tx.QueryRow(ctx, `SELECT vote_score FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error locking post: %w", err)
	}
	return score, nil
}

// GetVoteForUpdate reads the user's existing vote within the transaction
func (r *VoteRepository) GetVoteForUpdate(ctx context.Context, tx pgx.Tx, postID int64, userID uuid.UUID) (*models.Vote, error) {
	query := `
		SELECT id, post_id, user_id, direction, created_at
		FROM votes
		WHERE post_id = $1 AND user_id = $2
		FOR UPDATE
	`
	var vote models.Vote
	err := tx.QueryRow(ctx, query, postID, userID).Scan(
		&vote.ID, &vote.PostID, &vote.UserID, &vote.Direction, &vote.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving vote for update: %w", err)
	}
	return &vote, nil
}

// InsertVote records a fresh vote
func (r *VoteRepository) InsertVote(ctx context.Context, tx pgx.Tx, postID int64, userID uuid.UUID, direction models.VoteDirection) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO votes (post_id, user_id, direction) VALUES ($1, $2, $3)`,
		postID, userID, direction,
	)
	if err != nil {
		return fmt.Errorf("error inserting vote: %w", err)
	}
	return nil
}

// UpdateVoteDirection flips an existing vote to the opposite direction
func (r *VoteRepository) UpdateVoteDirection(ctx context.Context, tx pgx.Tx, voteID int64, direction models.VoteDirection) error {
	_, err := tx.Exec(ctx, `UPDATE votes SET direction = $1 WHERE id = $2`, direction, voteID)
	if err != nil {
		return fmt.Errorf("error updating vote: %w", err)
	}
	return nil
}

// DeleteVote removes a vote row (a toggle back to neutral)
func (r *VoteRepository) DeleteVote(ctx context.Context, tx pgx.Tx, voteID int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM votes WHERE id = $1`, voteID)
	if err != nil {
		return fmt.Errorf("error deleting vote: %w", err)
	}
	return nil
}

// ApplyScoreDelta adjusts the post's denormalized score relative to its
// current value and returns the new score.
func (r *VoteRepository) ApplyScoreDelta(ctx context.Context, tx pgx.Tx, postID int64, delta int64) (int64, error) {
	var score int64
	err := tx.QueryRow(ctx,
		`UPDATE posts SET vote_score = vote_score + $1, updated_at = NOW() WHERE id = $2 RETURNING vote_score`,
		delta, postID,
	).Scan(&score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error applying score delta: %w", err)
	}
	return score, nil
}
