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

// PostRepository handles database operations for posts
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new post with a zero score
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, body, image_url, community_id, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, vote_score, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		post.Title, post.Body, post.ImageURL, post.CommunityID, post.AuthorID,
	).Scan(&post.ID, &post.VoteScore, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating post: %w", err)
	}
	return nil
}

// GetByID retrieves a post with its community name and author handle
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT p.id, p.title, p.body, p.image_url, p.community_id, p.author_id,
		       p.vote_score, p.created_at, p.updated_at, c.name, u.user_name
		FROM posts p
		JOIN communities c ON c.id = p.community_id
		LEFT JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`
	var post models.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Body, &post.ImageURL, &post.CommunityID,
		&post.AuthorID, &post.VoteScore, &post.CreatedAt, &post.UpdatedAt,
		&post.CommunityName, &post.AuthorHandle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}
	return &post, nil
}

// GetAuthorID returns the author of a post for ownership checks. A post whose
// author account was deleted has no owner.
func (r *PostRepository) GetAuthorID(ctx context.Context, id int64) (*uuid.UUID, error) {
	var authorID *uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT author_id FROM posts WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving post author: %w", err)
	}
	return authorID, nil
}

// Delete removes a post. Comments and votes go with it via cascade.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}
