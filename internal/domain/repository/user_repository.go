package repository

import "github.com/intecelectric/crm-api/internal/domain/entity"

// UserRepository persists operator accounts.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Upsert(u *entity.User) error
}
