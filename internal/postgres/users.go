package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"local-library/internal/models"
)

var userColumns = []interface{}{"id", "firebase_uid", "email", "first_name", "last_name", "password_hash", "is_active", "permissions"}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u           models.User
		firebaseUID pgtype.Text
		perms       []byte
	)
	if err := row.Scan(&u.ID, &firebaseUID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.IsActive, &perms); err != nil {
		return nil, err
	}
	u.FirebaseUID = firebaseUID.String

	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &u.Permissions); err != nil {
			return nil, fmt.Errorf("błąd dekodowania uprawnień: %w", err)
		}
	}
	return &u, nil
}

func (s *Store) getUser(ctx context.Context, where goqu.Expression) (*models.User, error) {
	query, err := toSQL(dialect.From(tableUsers).Select(userColumns...).Where(where))
	if err != nil {
		return nil, err
	}

	u, err := scanUser(s.pool.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania użytkownika: %w", notFound(err))
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, goqu.C("id").Eq(id))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, goqu.Func("LOWER", goqu.C("email")).Eq(strings.ToLower(email)))
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	perms := u.Permissions
	if perms == nil {
		perms = []models.Permission{}
	}
	encoded, err := json.Marshal(perms)
	if err != nil {
		return fmt.Errorf("błąd kodowania uprawnień: %w", err)
	}

	ds := dialect.Insert(tableUsers).Rows(goqu.Record{
		"id":            u.ID,
		"firebase_uid":  nullable(u.FirebaseUID),
		"email":         strings.ToLower(u.Email),
		"first_name":    u.FirstName,
		"last_name":     u.LastName,
		"password_hash": u.PasswordHash,
		"is_active":     u.IsActive,
		"permissions":   string(encoded),
	})
	if err := s.exec(ctx, ds, false); err != nil {
		return fmt.Errorf("błąd zapisywania użytkownika: %w", err)
	}
	return nil
}
