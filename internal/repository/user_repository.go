package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/onerilhan/go-betting-api/internal/models"
	"github.com/onerilhan/go-betting-api/internal/svcerr"
)

// UserRepository kullanıcı database işlemleri
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository yeni repository oluşturur
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create yeni kullanıcı oluşturur
func (r *UserRepository) Create(req *models.CreateUserRequest) (*models.User, error) {
	query := `
		INSERT INTO users (email, password, first_name, last_name, role, balance)
		VALUES ($1, $2, $3, $4, $5, 0)
		RETURNING id, email, first_name, last_name, role, balance, created_at, updated_at
	`

	var user models.User
	err := r.db.QueryRow(query, req.Email, req.Password, req.FirstName, req.LastName, req.Role).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.Balance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	return &user, nil
}

// GetByEmail email ile kullanıcı bulur
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password, first_name, last_name, role, balance, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.Balance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svcerr.ErrNotFound
		}
		return nil, fmt.Errorf("kullanıcı arama hatası: %w", err)
	}

	return &user, nil
}

// GetByID ID ile kullanıcı bulur
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	query := `
		SELECT id, email, password, first_name, last_name, role, balance, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.Balance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svcerr.ErrNotFound
		}
		return nil, fmt.Errorf("kullanıcı arama hatası: %w", err)
	}

	return &user, nil
}

// GetParticipants role=participant olan kullanıcıları listeler
func (r *UserRepository) GetParticipants() ([]*models.User, error) {
	query := `
		SELECT id, email, first_name, last_name, role, balance, created_at, updated_at
		FROM users
		WHERE role = 'participant'
		ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("katılımcı listesi sorgusu hatası: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.FirstName,
			&u.LastName,
			&u.Role,
			&u.Balance,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("katılımcı scan hatası: %w", err)
		}
		users = append(users, &u)
	}

	return users, rows.Err()
}

// GetBalanceForUpdateTx kullanıcının bakiyesini satır kilidi ile okur.
// Aynı kullanıcı için eşzamanlı bakiye değişiklikleri bu kilit üzerinden
// serileşir; transaction commit edilene kadar diğer istekler bekler.
func (r *UserRepository) GetBalanceForUpdateTx(tx *sql.Tx, userID int) (int64, error) {
	query := `SELECT balance FROM users WHERE id = $1 FOR UPDATE`

	var balance int64
	err := tx.QueryRow(query, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, svcerr.ErrNotFound
		}
		return 0, fmt.Errorf("bakiye kilitleme hatası: %w", err)
	}

	return balance, nil
}

// UpdateBalanceTx kullanıcının bakiyesini transaction içinde günceller
func (r *UserRepository) UpdateBalanceTx(tx *sql.Tx, userID int, newBalance int64) error {
	query := `UPDATE users SET balance = $1, updated_at = NOW() WHERE id = $2`

	_, err := tx.Exec(query, newBalance, userID)
	if err != nil {
		return fmt.Errorf("bakiye güncellenemedi: %w", err)
	}

	return nil
}
