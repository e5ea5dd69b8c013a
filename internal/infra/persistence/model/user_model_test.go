package model

import (
	"testing"
	"time"

	"apilogin/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserModel_RoundTrip(t *testing.T) {
	lastLogin := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	user := &entity.User{
		Email:        "jane@example.com",
		UserID:       uuid.New(),
		FullName:     "Jane Doe",
		PasswordHash: "$2a$10$digest",
		Height:       165.5,
		Weight:       55,
		Age:          31,
		Gender:       entity.GenderWomen,
		IsLoggedIn:   true,
		LastLogin:    &lastLogin,
	}

	m := FromUserDomain(user)
	assert.Equal(t, user.UserID.String(), m.UserID)
	assert.Equal(t, "women", m.Gender)
	assert.Equal(t, "$2a$10$digest", m.Password)

	back, err := ToUserDomain(m)
	require.NoError(t, err)
	assert.Equal(t, user, back)
}

func TestUserModel_NilLastLogin(t *testing.T) {
	m := FromUserDomain(&entity.User{Email: "a@b.c", UserID: uuid.New(), Gender: entity.GenderMan})
	assert.Nil(t, m.LastLogin)

	back, err := ToUserDomain(m)
	require.NoError(t, err)
	assert.Nil(t, back.LastLogin)
	assert.False(t, back.IsLoggedIn)
}

func TestToUserDomain_MalformedUserID(t *testing.T) {
	_, err := ToUserDomain(&UserModel{Email: "a@b.c", UserID: "not-a-uuid"})
	assert.ErrorContains(t, err, "malformed userId")
}
