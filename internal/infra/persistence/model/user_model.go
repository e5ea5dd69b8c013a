// Package model holds the persisted shape of an account, shared by every store backend.
package model

import (
	"time"

	"apilogin/internal/domain/entity"
	"apilogin/internal/errors"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table and the documents of the 'users' Firestore
// collection. Email is the key on both.
type UserModel struct {
	Email      string     `gorm:"type:varchar(255);primaryKey" firestore:"email"`
	UserID     string     `gorm:"column:user_id;type:uuid;not null;uniqueIndex" firestore:"userId"`
	FullName   string     `gorm:"column:fullname;type:varchar(255)" firestore:"fullname"`
	Password   string     `gorm:"column:password;type:varchar(72);not null" firestore:"password"`
	IsLoggedIn bool       `gorm:"column:is_logged_in;not null;default:false" firestore:"isLoggedIn"`
	LastLogin  *time.Time `gorm:"column:last_login" firestore:"lastLogin"`
	Height     float64    `firestore:"height"`
	Weight     float64    `firestore:"weight"`
	Age        float64    `firestore:"age"`
	Gender     string     `gorm:"type:varchar(16);not null" firestore:"gender"`
	CreatedAt  time.Time  `firestore:"-"`
	UpdatedAt  time.Time  `firestore:"-"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// FromUserDomain maps an entity to its persisted shape.
func FromUserDomain(user *entity.User) *UserModel {
	return &UserModel{
		Email:      user.Email,
		UserID:     user.UserID.String(),
		FullName:   user.FullName,
		Password:   user.PasswordHash,
		IsLoggedIn: user.IsLoggedIn,
		LastLogin:  user.LastLogin,
		Height:     user.Height,
		Weight:     user.Weight,
		Age:        user.Age,
		Gender:     user.Gender.String(),
	}
}

// ToUserDomain maps a stored record back to an entity.
func ToUserDomain(m *UserModel) (*entity.User, error) {
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, errors.Wrapf(err, "stored user %s has malformed userId", m.Email)
	}

	return &entity.User{
		Email:        m.Email,
		UserID:       userID,
		FullName:     m.FullName,
		PasswordHash: m.Password,
		Height:       m.Height,
		Weight:       m.Weight,
		Age:          m.Age,
		Gender:       entity.Gender(m.Gender),
		IsLoggedIn:   m.IsLoggedIn,
		LastLogin:    m.LastLogin,
	}, nil
}
