package repositories

import (
	"gorm.io/gorm"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByPhone looks up a user by phone number.
func (r *UserRepository) FindByPhone(phone string) (models.User, error) {
	var user models.User
	err := orm.With(r.db).Model(&models.User{}).Where("phone = ?", phone).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	err := orm.With(r.db).Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.With(r.db).Create(user)
}
