package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

const (
	usersTable = "users"
)

type UserRepository interface {
	GetUserByUsername(username string) (*domain.User, error)
	CreateUserIfAbsent(user *domain.User) (bool, error)
}

type userRepository struct {
	conn postgres.Queryer
}

func NewUserRepository(conn postgres.Queryer) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) GetUserByUsername(username string) (*domain.User, error) {
	query, args, err := squirrel.
		Select("id", "username", "password_hash", "created_at").
		From(usersTable).
		Where(squirrel.Eq{"username": username}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var user domain.User
	err = r.conn.QueryRow(query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classifyError("buscar usuário", err)
	}

	return &user, nil
}

// CreateUserIfAbsent cria o usuário apenas se o username ainda não existir.
// Retorna true quando a linha foi inserida.
func (r *userRepository) CreateUserIfAbsent(user *domain.User) (bool, error) {
	query, args, err := squirrel.
		Insert(usersTable).
		Columns("username", "password_hash").
		Values(user.Username, user.PasswordHash).
		Suffix("ON CONFLICT (username) DO NOTHING RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&user.ID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, classifyError("criar usuário", err)
	}

	return true, nil
}
