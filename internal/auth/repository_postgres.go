package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateWithHousehold(
	ctx context.Context,
	household *Household,
	user *User,
) error {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `
		INSERT INTO households (id, name, created_at)
		VALUES ($1, $2, now())
		RETURNING created_at
	`, household.ID, household.Name).Scan(&household.CreatedAt); err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, `
		INSERT INTO users (id, household_id, name, email, password, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING created_at
	`, user.ID, user.HouseholdID, user.Name, user.Email, user.Password).Scan(&user.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists int
	err := r.db.QueryRow(ctx, `SELECT 1 FROM users WHERE email = $1 LIMIT 1`, email).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

const userColumns = `id, household_id, name, email, password, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.HouseholdID, &user.Name,
		&user.Email, &user.Password, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetHousehold(ctx context.Context, id uuid.UUID) (*Household, error) {
	var h Household
	err := r.db.QueryRow(ctx, `
		SELECT id, name, created_at FROM households WHERE id = $1
	`, id).Scan(&h.ID, &h.Name, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &h, nil
}
