package usecase

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

type UserService struct {
	UsersRepo *repository.UsersRepo
}

func NewUserService(users *repository.UsersRepo) *UserService {
	return &UserService{UsersRepo: users}
}

// CreateUser registers a new account. The password arrives in plaintext and
// is stored argon2-hashed.
func (svc *UserService) CreateUser(ctx context.Context, user *model.User) error {
	existing, err := svc.UsersRepo.FindUserByUsername(user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("username already exists")
	}

	hashed, err := services.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed

	if user.UserID == "" {
		user.UserID = utils.GenerateUserID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err = svc.UsersRepo.AddUser(ctx, user)
	return err
}

func (svc *UserService) GetUserByID(userID string) (*model.User, error) {
	return svc.UsersRepo.FindUser(userID)
}

func (svc *UserService) GetUserByUsername(username string) (*model.User, error) {
	return svc.UsersRepo.FindUserByUsername(username)
}
