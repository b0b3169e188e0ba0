package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/pkg/apperrors"
	"github.com/bfriends/backend/internal/pkg/dberrors"
	"github.com/bfriends/backend/internal/pkg/logger"
)

const userColumns = `id, email, password, full_name, user_name, primary_role, nim,
	student_major, student_batch, employee_id, employee_department,
	campus_locations, bio, occupation_tags, custom_links, image_url,
	profile_complete, created_at, updated_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var linksRaw []byte
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FullName,
		&user.UserName,
		&user.PrimaryRole,
		&user.NIM,
		&user.StudentMajor,
		&user.StudentBatch,
		&user.EmployeeID,
		&user.EmployeeDepartment,
		&user.CampusLocations,
		&user.Bio,
		&user.OccupationTags,
		&linksRaw,
		&user.ImageURL,
		&user.ProfileComplete,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(linksRaw) > 0 {
		if err := json.Unmarshal(linksRaw, &user.CustomLinks); err != nil {
			return nil, fmt.Errorf("error decoding custom links: %w", err)
		}
	}
	return &user, nil
}

// CreateUser inserts a new user row at signup time. The profile starts
// incomplete with no handle.
func (r *UserRepository) CreateUser(ctx context.Context, id uuid.UUID, email, passwordHash, fullName string) error {
	query := `
		INSERT INTO users (id, email, password, full_name)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, id, email, passwordHash, fullName)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}
	return user, nil
}

// GetByUserName retrieves a user by handle
func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_name = $1`, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, userName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by handle: %w", err)
	}
	return user, nil
}

// UpdateUserName changes only the unique handle
func (r *UserRepository) UpdateUserName(ctx context.Context, id uuid.UUID, userName string) error {
	query := `UPDATE users SET user_name = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.Exec(ctx, query, userName, id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_user_name_key") {
			return apperrors.ErrHandleTaken
		}
		return fmt.Errorf("error updating handle: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateProfile writes the full profile form. completeProfile additionally
// sets the completion flag; the flag is never cleared here.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User, completeProfile bool) error {
	links := user.CustomLinks
	if links == nil {
		links = []models.CustomLink{}
	}
	linksRaw, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("error encoding custom links: %w", err)
	}

	builder := r.sb.Update("users").
		Set("full_name", user.FullName).
		Set("user_name", user.UserName).
		Set("primary_role", user.PrimaryRole).
		Set("nim", user.NIM).
		Set("student_major", user.StudentMajor).
		Set("student_batch", user.StudentBatch).
		Set("employee_id", user.EmployeeID).
		Set("employee_department", user.EmployeeDepartment).
		Set("campus_locations", user.CampusLocations).
		Set("bio", user.Bio).
		Set("occupation_tags", user.OccupationTags).
		Set("custom_links", linksRaw).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": user.ID})
	if completeProfile {
		builder = builder.Set("profile_complete", true)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build profile update query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_user_name_key") {
			return apperrors.ErrHandleTaken
		}
		return fmt.Errorf("error updating profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateImageURL sets the avatar URL, returning the previous value so the
// caller can clean up stored files.
func (r *UserRepository) UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL *string) (previous *string, err error) {
	query := `
		UPDATE users u SET image_url = $1, updated_at = NOW()
		FROM (SELECT id, image_url FROM users WHERE id = $2) old
		WHERE u.id = old.id
		RETURNING old.image_url
	`
	err = r.db.QueryRow(ctx, query, imageURL, id).Scan(&previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating avatar: %w", err)
	}
	return previous, nil
}

// SearchByNameOrHandle finds users whose handle or full name contains the term,
// case-insensitively. Used by the search sidebar.
func (r *UserRepository) SearchByNameOrHandle(ctx context.Context, term string, limit int) ([]models.User, error) {
	pattern := likePattern(term)
	query := `
		SELECT id, user_name, full_name, image_url
		FROM users
		WHERE user_name ILIKE $1 OR full_name ILIKE $1
		ORDER BY user_name NULLS LAST
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.UserName, &user.FullName, &user.ImageURL); err != nil {
			logger.Error().Err(err).Msg("Error scanning user search row")
			continue
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
