package user

import (
	"context"
	"testing"

	"pazar-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUsers(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return &Service{DB: db}, db
}

func TestCreateUser_NormalizesAndHashes(t *testing.T) {
	svc, _ := setupUsers(t)

	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "Ayse@Example.COM",
		Password: "Sifre123!",
		Fullname: "  ayse   yilmaz ",
	})
	require.NoError(t, err)
	assert.Equal(t, "ayse@example.com", u.Email)
	assert.Equal(t, "Ayse Yilmaz", u.Fullname)
	assert.Equal(t, "Ayse Yilmaz", u.DisplayName, "display name defaults to fullname")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Sifre123!")))
}

func TestCreateUser_ExplicitDisplayName(t *testing.T) {
	svc, _ := setupUsers(t)
	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email: "m@example.com", Password: "Sifre123!", Fullname: "Mehmet Demir",
		DisplayName: "Demir Ticaret",
	})
	require.NoError(t, err)
	assert.Equal(t, "Demir Ticaret", u.DisplayName)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, _ := setupUsers(t)
	in := CreateUserInput{Email: "a@example.com", Password: "Sifre123!", Fullname: "A B"}
	_, err := svc.CreateUser(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, "Email already registered", err.Error())
}

func TestCreateUser_Validation(t *testing.T) {
	svc, _ := setupUsers(t)
	cases := []struct {
		name string
		in   CreateUserInput
		want string
	}{
		{"bad email", CreateUserInput{Email: "nope", Password: "Sifre123!", Fullname: "A B"}, "Invalid email format"},
		{"weak password", CreateUserInput{Email: "a@example.com", Password: "short", Fullname: "A B"}, "Invalid password format"},
		{"empty fullname", CreateUserInput{Email: "a@example.com", Password: "Sifre123!", Fullname: "  "}, "Full name is required and must be a non-empty string"},
		{"bad fullname", CreateUserInput{Email: "a@example.com", Password: "Sifre123!", Fullname: "A1 B2"}, "Full name contains invalid characters (only letters, spaces, hyphens, and apostrophes allowed)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestCreateUser_TurkishLettersAllowed(t *testing.T) {
	svc, _ := setupUsers(t)
	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email: "c@example.com", Password: "Sifre123!", Fullname: "Çağla Öztürk",
	})
	require.NoError(t, err)
	assert.Equal(t, "Çağla Öztürk", u.Fullname)
}

func TestUpdateUser_PasswordBecomesHash(t *testing.T) {
	svc, db := setupUsers(t)
	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email: "a@example.com", Password: "Sifre123!", Fullname: "A B",
	})
	require.NoError(t, err)

	_, err = svc.UpdateUser(context.Background(), u.UserID.String(), map[string]interface{}{
		"password": "YeniSifre1!",
	})
	require.NoError(t, err)

	var got domain.User
	require.NoError(t, db.First(&got, "user_id = ?", u.UserID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("YeniSifre1!")))
}

func TestUpdateUser_IgnoresUnknownFields(t *testing.T) {
	svc, _ := setupUsers(t)
	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email: "a@example.com", Password: "Sifre123!", Fullname: "A B",
	})
	require.NoError(t, err)

	_, err = svc.UpdateUser(context.Background(), u.UserID.String(), map[string]interface{}{
		"is_admin": true,
	})
	require.Error(t, err)
	assert.Equal(t, "No valid update fields provided", err.Error())
}

func TestUpdateUser_DisplayName(t *testing.T) {
	svc, _ := setupUsers(t)
	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email: "a@example.com", Password: "Sifre123!", Fullname: "A B",
	})
	require.NoError(t, err)

	got, err := svc.UpdateUser(context.Background(), u.UserID.String(), map[string]interface{}{
		"display_name": "Yeni Dukkan",
	})
	require.NoError(t, err)
	assert.Equal(t, "Yeni Dukkan", got.DisplayName)
}

func TestViewUser_NotFound(t *testing.T) {
	svc, _ := setupUsers(t)
	_, err := svc.ViewUser(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Equal(t, "User not found", err.Error())
}
