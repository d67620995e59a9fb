package usecase

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/xavierca1/mailmorph/internal/entity"
)

type UserUseCase struct {
	Mail  MailGateway
	Users Collection[entity.User]
	Files FileStorage
}

func NewUserUseCase(mail MailGateway, users Collection[entity.User], files FileStorage) *UserUseCase {
	return &UserUseCase{Mail: mail, Users: users, Files: files}
}

// Current returns the profile of the authenticated mailbox, creating it on first sight.
func (uc *UserUseCase) Current(ctx context.Context) (*entity.User, error) {
	if uc.Mail == nil || !uc.Mail.IsAuthenticated(ctx) {
		return nil, unauthenticated()
	}

	address, err := uc.Mail.Profile(ctx)
	if err != nil {
		return nil, upstream("mail gateway", err)
	}
	if address == "" {
		return nil, upstream("mail gateway", fmt.Errorf("profile has no email address"))
	}

	var current entity.User
	err = uc.Users.Update(ctx, func(users []entity.User) ([]entity.User, error) {
		for _, u := range users {
			if u.Email == address {
				current = u
				return nil, nil
			}
		}
		current = entity.NewUser(len(users)+1, address)
		log.Printf("👤 [USERS] %s registrado como usuário %d", address, current.ID)
		return append(users, current), nil
	})
	if err != nil {
		return nil, storageFailure("register user", err)
	}
	return &current, nil
}

// UpdateProfile sets name and bio, and stores the picture when one is given.
// The upload runs before the collection is locked.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*entity.User, error) {
	users, err := uc.Users.Load(ctx)
	if err != nil {
		return nil, storageFailure("load users", err)
	}
	if !hasUser(users, input.ID) {
		return nil, notFound("USER_NOT_FOUND", "User not found")
	}

	var location string
	if input.Picture != nil && uc.Files != nil {
		key := fmt.Sprintf("%d_%s", input.ID, sanitizeFilename(input.PictureName))
		location, err = uc.Files.Upload(ctx, key, input.Picture)
		if err != nil {
			return nil, &TechnicalError{Code: "UPLOAD_ERROR", Message: "failed to store profile picture: " + err.Error(), Err: err}
		}
	}

	var updated *entity.User
	err = uc.Users.Update(ctx, func(users []entity.User) ([]entity.User, error) {
		for i := range users {
			if users[i].ID != input.ID {
				continue
			}
			users[i].Name = input.Name
			users[i].Bio = input.Bio
			if location != "" {
				users[i].ProfilePic = location
			}
			u := users[i]
			updated = &u
			return users, nil
		}
		return nil, nil
	})
	if err != nil {
		return nil, storageFailure("update user", err)
	}
	if updated == nil {
		return nil, notFound("USER_NOT_FOUND", "User not found")
	}
	return updated, nil
}

func hasUser(users []entity.User, id int) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (uc *UserUseCase) Logout(ctx context.Context) error {
	if uc.Mail == nil {
		return nil
	}
	if err := uc.Mail.Logout(ctx); err != nil {
		return &TechnicalError{Code: "LOGOUT_ERROR", Message: "failed to log out: " + err.Error(), Err: err}
	}
	return nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "picture"
	}
	return strings.ReplaceAll(name, " ", "_")
}
