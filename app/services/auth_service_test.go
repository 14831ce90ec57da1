package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/repositories"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/services"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/auth"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}))

	t.Cleanup(func() {
		db.Exec("DELETE FROM order_items")
		db.Exec("DELETE FROM orders")
		db.Exec("DELETE FROM products")
		db.Exec("DELETE FROM users")
	})
	return db
}

func registerUser(t *testing.T, db *gorm.DB, name, phone string) models.User {
	t.Helper()
	hash, err := auth.HashSecret(phone)
	require.NoError(t, err)

	user := models.User{Name: name, Phone: phone, Email: phone + "@temp.com", SecretHash: hash}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestSignInSuccess(t *testing.T) {
	db := newTestDB(t)
	registerUser(t, db, "Maria Silva", "11999990000")
	svc := services.NewAuthService(repositories.NewUserRepository(db))

	session, err := svc.SignIn("maria silva", "11999990000")
	require.NoError(t, err)

	assert.Equal(t, "Maria Silva", session.User.Name)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	claims, err := auth.ValidateToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
}

func TestSignInUnknownPhone(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(repositories.NewUserRepository(db))

	session, err := svc.SignIn("Maria Silva", "11999990000")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	assert.Nil(t, session)
}

func TestSignInNameMismatchEstablishesNoSession(t *testing.T) {
	db := newTestDB(t)
	registerUser(t, db, "Maria Silva", "11999990000")
	svc := services.NewAuthService(repositories.NewUserRepository(db))

	session, err := svc.SignIn("Joana Lima", "11999990000")
	assert.ErrorIs(t, err, services.ErrNameMismatch)
	assert.Nil(t, session)
}

func TestSignUpCreatesAccountAndSession(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(repositories.NewUserRepository(db))

	session, err := svc.SignUp("  João Pereira ", "11988887777")
	require.NoError(t, err)

	assert.Equal(t, "João Pereira", session.User.Name)
	assert.Equal(t, "11988887777@temp.com", session.User.Email)
	assert.NotEmpty(t, session.AccessToken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSignUpConflictPerformsNoInsert(t *testing.T) {
	db := newTestDB(t)
	registerUser(t, db, "Maria Silva", "11999990000")
	svc := services.NewAuthService(repositories.NewUserRepository(db))

	session, err := svc.SignUp("Outra Pessoa", "11999990000")
	assert.ErrorIs(t, err, services.ErrPhoneTaken)
	assert.Nil(t, session)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecoverDisclosesName(t *testing.T) {
	db := newTestDB(t)
	registerUser(t, db, "Maria Silva", "11999990000")
	svc := services.NewAuthService(repositories.NewUserRepository(db))

	name, err := svc.Recover("11999990000")
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", name)

	_, err = svc.Recover("11000000000")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestRefreshIssuesNewSession(t *testing.T) {
	db := newTestDB(t)
	registerUser(t, db, "Maria Silva", "11999990000")
	svc := services.NewAuthService(repositories.NewUserRepository(db))

	session, err := svc.SignIn("Maria Silva", "11999990000")
	require.NoError(t, err)

	renewed, err := svc.Refresh(session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, renewed.User.ID)
	assert.NotEmpty(t, renewed.AccessToken)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(repositories.NewUserRepository(db))

	_, err := svc.Refresh("not-a-token")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
