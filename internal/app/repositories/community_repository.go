package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/pkg/apperrors"
	"github.com/bfriends/backend/internal/pkg/dberrors"
	"github.com/bfriends/backend/internal/pkg/logger"
)

// CommunityRepository handles database operations for communities
type CommunityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(db *pgxpool.Pool) *CommunityRepository {
	return &CommunityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new community. Names are unique; a duplicate maps to
// ErrCommunityAlreadyExists.
func (r *CommunityRepository) Create(ctx context.Context, community *models.Community) error {
	query := `
		INSERT INTO communities (name, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, community.Name, community.Description, community.OwnerID).
		Scan(&community.ID, &community.CreatedAt, &community.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "communities_name_key") {
			return apperrors.ErrCommunityAlreadyExists
		}
		return fmt.Errorf("error creating community: %w", err)
	}
	return nil
}

// GetByName retrieves a community by its exact name
func (r *CommunityRepository) GetByName(ctx context.Context, name string) (*models.Community, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM communities
		WHERE name = $1
	`
	var community models.Community
	err := r.db.QueryRow(ctx, query, name).Scan(
		&community.ID, &community.Name, &community.Description,
		&community.OwnerID, &community.CreatedAt, &community.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommunityNotFound
		}
		return nil, fmt.Errorf("error retrieving community: %w", err)
	}
	return &community, nil
}

// GetByID retrieves a community by ID
func (r *CommunityRepository) GetByID(ctx context.Context, id int64) (*models.Community, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM communities
		WHERE id = $1
	`
	var community models.Community
	err := r.db.QueryRow(ctx, query, id).Scan(
		&community.ID, &community.Name, &community.Description,
		&community.OwnerID, &community.CreatedAt, &community.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommunityNotFound
		}
		return nil, fmt.Errorf("error retrieving community: %w", err)
	}
	return &community, nil
}

// UpdateDescription sets a community's description
func (r *CommunityRepository) UpdateDescription(ctx context.Context, id int64, description *string) error {
	query := `UPDATE communities SET description = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.Exec(ctx, query, description, id)
	if err != nil {
		return fmt.Errorf("error updating community description: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCommunityNotFound
	}
	return nil
}

// SearchByName finds communities whose name contains the term,
// case-insensitively. Used by the search sidebar.
func (r *CommunityRepository) SearchByName(ctx context.Context, term string, limit int) ([]models.Community, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM communities
		WHERE name ILIKE $1
		ORDER BY name
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, likePattern(term), limit)
	if err != nil {
		return nil, fmt.Errorf("error searching communities: %w", err)
	}
	defer rows.Close()

	var communities []models.Community
	for rows.Next() {
		var community models.Community
		err := rows.Scan(
			&community.ID, &community.Name, &community.Description,
			&community.OwnerID, &community.CreatedAt, &community.UpdatedAt,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning community row")
			continue
		}
		communities = append(communities, community)
	}
	return communities, rows.Err()
}

// EnsureExists inserts a community by name if it is not already present.
// Used for seeding the default community at startup.
func (r *CommunityRepository) EnsureExists(ctx context.Context, name string, description *string) error {
	query := `
		INSERT INTO communities (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, name, description)
	if err != nil {
		return fmt.Errorf("error seeding community %s: %w", name, err)
	}
	return nil
}
