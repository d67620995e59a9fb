package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/mailmorph/internal/entity"
	"github.com/xavierca1/mailmorph/internal/infra/database"
	"github.com/xavierca1/mailmorph/internal/usecase"
)

func newUserUseCase() (*usecase.UserUseCase, *MockMailGateway, *MockFileStorage, *database.Collection[entity.User]) {
	mail := new(MockMailGateway)
	files := new(MockFileStorage)
	users := database.NewUserRepository(database.NewMemoryBlobStore())
	return usecase.NewUserUseCase(mail, users, files), mail, files, users
}

// ============ TESTES DE PERFIL ============

func TestCurrentUnauthenticated(t *testing.T) {
	uc, mail, _, _ := newUserUseCase()
	mail.On("IsAuthenticated", mock.Anything).Return(false)

	_, err := uc.Current(context.Background())

	assert.ErrorIs(t, err, entity.ErrUnauthenticated)
}

// TestCurrentRegistersOnce - Primeiro acesso cria o usuário, os seguintes reutilizam
func TestCurrentRegistersOnce(t *testing.T) {
	uc, mail, _, users := newUserUseCase()
	mail.On("IsAuthenticated", mock.Anything).Return(true)
	mail.On("Profile", mock.Anything).Return("ana.lima@corp.com", nil)

	first, err := uc.Current(context.Background())
	require.NoError(t, err)
	second, err := uc.Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "ana.lima", first.Name)
	assert.Equal(t, entity.UserStatusActive, first.Status)
	assert.Equal(t, first, second)

	all, _ := users.Load(context.Background())
	assert.Len(t, all, 1)
}

func TestCurrentProfileFailure(t *testing.T) {
	uc, mail, _, _ := newUserUseCase()
	mail.On("IsAuthenticated", mock.Anything).Return(true)
	mail.On("Profile", mock.Anything).Return("", errors.New("token revoked"))

	_, err := uc.Current(context.Background())

	assert.ErrorIs(t, err, entity.ErrUpstream)
}

// TestUpdateProfileWithPicture - Grava a foto como {id}_{arquivo} e atualiza o perfil
func TestUpdateProfileWithPicture(t *testing.T) {
	uc, _, files, users := newUserUseCase()
	require.NoError(t, users.Save(context.Background(), []entity.User{entity.NewUser(1, "ana@corp.com")}))
	files.On("Upload", mock.Anything, "1_my_avatar.png", mock.Anything).Return("/uploads/1_my_avatar.png", nil)

	user, err := uc.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		ID:          1,
		Name:        "Ana Lima",
		Bio:         "Growth",
		Picture:     strings.NewReader("png"),
		PictureName: "my avatar.png",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", user.Name)
	assert.Equal(t, "Growth", user.Bio)
	assert.Equal(t, "/uploads/1_my_avatar.png", user.ProfilePic)

	stored, _ := users.Load(context.Background())
	assert.Equal(t, *user, stored[0])
}

func TestUpdateProfileNotFound(t *testing.T) {
	uc, _, files, _ := newUserUseCase()

	_, err := uc.UpdateProfile(context.Background(), usecase.UpdateProfileInput{ID: 9, Name: "x"})

	assert.ErrorIs(t, err, entity.ErrNotFound)
	files.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

// TestUpdateProfileUploadFailure - Falha no upload não altera o perfil
func TestUpdateProfileUploadFailure(t *testing.T) {
	uc, _, files, users := newUserUseCase()
	require.NoError(t, users.Save(context.Background(), []entity.User{entity.NewUser(1, "ana@corp.com")}))
	files.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("disk full"))

	_, err := uc.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		ID: 1, Name: "Changed", Picture: strings.NewReader("x"), PictureName: "a.png",
	})

	assert.True(t, usecase.IsTechnicalError(err))
	stored, _ := users.Load(context.Background())
	assert.Equal(t, "ana", stored[0].Name)
}

// TestUpdateProfileUploadOutsideLock - O upload roda sem segurar a coleção de usuários
func TestUpdateProfileUploadOutsideLock(t *testing.T) {
	uc, _, files, users := newUserUseCase()
	require.NoError(t, users.Save(context.Background(), []entity.User{entity.NewUser(1, "ana@corp.com")}))

	var seen []entity.User
	files.On("Upload", mock.Anything, "1_a.png", mock.Anything).
		Run(func(args mock.Arguments) {
			seen, _ = users.Load(context.Background())
		}).
		Return("/uploads/1_a.png", nil)

	done := make(chan error, 1)
	go func() {
		_, err := uc.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
			ID: 1, Name: "Ana", Picture: strings.NewReader("x"), PictureName: "a.png",
		})
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("upload ran while the users collection was locked")
	}
	assert.Len(t, seen, 1)
	stored, _ := users.Load(context.Background())
	assert.Equal(t, "/uploads/1_a.png", stored[0].ProfilePic)
}

func TestLogoutDelegatesToGateway(t *testing.T) {
	uc, mail, _, _ := newUserUseCase()
	mail.On("Logout", mock.Anything).Return(nil)

	assert.NoError(t, uc.Logout(context.Background()))
	mail.AssertCalled(t, "Logout", mock.Anything)
}
