package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tour_sales_backend/internal/models"
)

//go:generate mockgen -destination=mocks/mock_auth_repository.go -package=mocks tour_sales_backend/internal/repositories AuthRepository

// AuthRepository defines the interface for authentication-related database operations.
type AuthRepository interface {
	CreateUser(ctx context.Context, executor SQLExecutor, user *models.User, hashedPassword string) (int64, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, string, error)
	FindUserByID(ctx context.Context, userID int64) (*models.User, error)
	FindRoleByName(ctx context.Context, name string) (*models.Role, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

const selectUser = `
	SELECT u.id, u.username, u.password_hash, u.email, u.full_name, u.role_id, ro.name,
	       u.guide_id, u.is_active, u.created_at, u.updated_at
	FROM users u
	JOIN roles ro ON u.role_id = ro.id`

func scanUser(row scanner) (*models.User, string, error) {
	user := &models.User{}
	var hashedPassword string
	var guideID sql.NullInt64
	err := row.Scan(
		&user.ID, &user.Username, &hashedPassword, &user.Email, &user.FullName, &user.RoleID, &user.RoleName,
		&guideID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, "", err
	}
	if guideID.Valid {
		user.GuideID = &guideID.Int64
	}
	return user, hashedPassword, nil
}

// CreateUser inserts a new active user and returns its id.
func (r *authRepository) CreateUser(ctx context.Context, executor SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	query := `INSERT INTO users (username, password_hash, email, full_name, role_id, guide_id, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $7)
	          RETURNING id`

	now := time.Now()
	var userID int64
	err := executor.QueryRowContext(ctx, query,
		user.Username, hashedPassword, user.Email, user.FullName, user.RoleID, user.GuideID, now,
	).Scan(&userID)
	if err != nil {
		return 0, wrapDBError("creating user", err)
	}
	return userID, nil
}

// FindUserByUsername returns the user and their password hash.
func (r *authRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, string, error) {
	user, hash, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE u.username = $1`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: finding user by username %s: %v", ErrDatabaseError, username, err)
	}
	return user, hash, nil
}

func (r *authRepository) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	user, _, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE u.id = $1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %d: %v", ErrDatabaseError, userID, err)
	}
	return user, nil
}

func (r *authRepository) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	role := &models.Role{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM roles WHERE name = $1`, name,
	).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding role %s: %v", ErrDatabaseError, name, err)
	}
	return role, nil
}
