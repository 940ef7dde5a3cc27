package user

import (
	"errors"
	"time"

	"zap-shift/httperror"
	userModel "zap-shift/models/user"
	userTypes "zap-shift/types/user"

	"gorm.io/gorm"
)

// UserService keeps the local account mirror of the identity provider. The
// provider owns credentials; this table only tracks role and last login.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Upsert records a login. A first-seen email gets a fresh account with the
// default role; a known one only has its last-login time refreshed.
func (us *UserService) Upsert(req userTypes.UserUpsertRequest) (*userModel.User, bool, error) {
	var u userModel.User
	err := us.DB.Where("email = ?", req.Email).First(&u).Error
	if err == nil {
		u.LastLogIn = time.Now()
		if err := us.DB.Save(&u).Error; err != nil {
			return nil, false, err
		}
		return &u, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	u = userModel.User{
		Email:     req.Email,
		Name:      req.Name,
		Role:      userModel.RoleUser,
		LastLogIn: time.Now(),
	}
	if err := us.DB.Create(&u).Error; err != nil {
		return nil, false, err
	}
	return &u, true, nil
}

// Search lists users, optionally narrowed by a partial email match.
func (us *UserService) Search(emailFragment string) ([]userModel.User, error) {
	query := us.DB.Model(&userModel.User{})
	if emailFragment != "" {
		query = query.Where("email ILIKE ?", "%"+emailFragment+"%")
	}

	var users []userModel.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// RoleByEmail looks up an account's role. Unknown emails resolve to the
// default role so a fresh login never gets locked out of the user views.
func (us *UserService) RoleByEmail(email string) (userModel.Role, error) {
	var u userModel.User
	err := us.DB.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return userModel.RoleUser, nil
	}
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

// UpdateRole sets an account's role directly.
func (us *UserService) UpdateRole(userID uint, role userModel.Role) (*userModel.User, error) {
	if !role.IsValid() {
		return nil, httperror.NewBadRequest("Unknown role: " + string(role))
	}

	var u userModel.User
	if err := us.DB.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperror.NewNotFound("User not found")
		}
		return nil, err
	}

	u.Role = role
	if err := us.DB.Save(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes an account.
func (us *UserService) Delete(userID uint) error {
	var u userModel.User
	if err := us.DB.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperror.NewNotFound("User not found")
		}
		return err
	}
	return us.DB.Delete(&u).Error
}
