package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventmanagement/internal/domain"
)

const userCols = "id, username, email, role, password_hash, created_at"

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func scanUser(scan func(dest ...any) error) (*domain.User, error) {
	u := &domain.User{}
	var role string
	if err := scan(&u.ID, &u.Username, &u.Email, &role, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.ParseRole(role)
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (` + userCols + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query, u.ID, u.Username, u.Email, string(u.Role), u.PasswordHash, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateUser
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+userCols+" FROM users WHERE id = $1", id)
	u, err := scanUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+userCols+" FROM users WHERE username = $1", username)
	u, err := scanUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) queryUsers(ctx context.Context, conds ...cond) ([]*domain.User, error) {
	where, args := buildWhere(conds...)
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userCols+" FROM users"+where+" ORDER BY username", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	return r.queryUsers(ctx, in("id", ids))
}

func (r *userRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	return r.queryUsers(ctx)
}
