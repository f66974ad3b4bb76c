package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type userSeed struct {
	Email    string
	Name     string
	Password string
	IsAdmin  bool
}

// Apply inserts demo accounts for manual testing. It is idempotent via
// ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	users := []userSeed{
		{
			Email:    "demo@example.com",
			Name:     "Demo Shopper",
			Password: "Password1",
		},
		{
			Email:    "admin@example.com",
			Name:     "Demo Admin",
			Password: "Password1",
			IsAdmin:  true,
		},
	}

	for _, u := range users {
		if err := upsertUser(ctx, pool, u); err != nil {
			return fmt.Errorf("upsert user %s: %w", u.Email, err)
		}
	}

	return nil
}

func upsertUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO users (email, name, password_hash, is_admin)
VALUES (lower($1), $2, $3, $4)
ON CONFLICT (lower(email)) DO UPDATE
SET name = EXCLUDED.name,
    password_hash = EXCLUDED.password_hash,
    is_admin = EXCLUDED.is_admin
`
	_, err = pool.Exec(ctx, q, u.Email, u.Name, string(hashed), u.IsAdmin)
	return err
}
