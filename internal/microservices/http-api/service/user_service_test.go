package service

import (
	"errors"
	"testing"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/middleware/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func rolePtr(r models.Role) *models.Role { return &r }

var (
	adminCaller = policy.AuthContext{UserID: "admin-id", Role: models.RoleAdmin, IsAuthenticated: true}
	userCaller  = policy.AuthContext{UserID: "user-id", Role: models.RoleUser, IsAuthenticated: true}
)

func TestCreateUser_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, nil, discardLogger())

	users.On("FindByEmail", ctx, "bob@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("FindByUsername", ctx, "bob").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return *u.Username == "bob" && u.Role == models.RoleUser && u.IsActive
	})).Return(nil)

	resp, err := svc.CreateUser(ctx, dto.CreateUserRequest{Username: "bob", Email: "bob@EXAMPLE.com", Bio: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", resp.Email)
	assert.Equal(t, models.RoleUser, resp.Role)
	assert.Equal(t, "hi", resp.Bio)
	users.AssertExpectations(t)
}

func TestCreateUser_Rejected(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateUserRequest
		want error
	}{
		{"reserved username", dto.CreateUserRequest{Username: "me", Email: "me@example.com"}, ErrInvalidInput},
		{"bad username", dto.CreateUserRequest{Username: "bob smith", Email: "bob@example.com"}, ErrInvalidInput},
		{"bad email", dto.CreateUserRequest{Username: "bob", Email: "bob"}, ErrInvalidEmail},
		{"bad role", dto.CreateUserRequest{Username: "bob", Email: "bob@example.com", Role: "root"}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)

			_, err := NewUserService(users, nil, discardLogger()).CreateUser(ctx, tt.req)

			assert.ErrorIs(t, err, tt.want)
			users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateUser_Taken(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, nil, discardLogger())

	users.On("FindByEmail", ctx, "bob@example.com").Return(&models.User{ID: "other"}, nil).Once()
	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{Username: "bob", Email: "bob@example.com"})
	assert.Equal(t, ErrEmailInUse, err)

	users.On("FindByEmail", ctx, "bob@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("FindByUsername", ctx, "bob").Return(&models.User{ID: "other"}, nil)
	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{Username: "bob", Email: "bob@example.com"})
	assert.Equal(t, ErrUsernameInUse, err)
}

func TestGetUser_MeAlias(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, nil, discardLogger())

	users.On("FindByID", ctx, "user-id").Return(&models.User{ID: "user-id", Username: strPtr("alice")}, nil)

	resp, err := svc.GetUser(ctx, userCaller, "me")

	require.NoError(t, err)
	assert.Equal(t, "alice", *resp.Username)
	users.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestGetUser_NotFound(t *testing.T) {
	users := new(MockUserRepository)

	users.On("FindByUsername", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := NewUserService(users, nil, discardLogger()).GetUser(ctx, adminCaller, "ghost")

	assert.Equal(t, ErrUserNotFound, err)
}

func TestUpdateUser_RoleIgnoredForNonAdmin(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, nil, discardLogger())

	users.On("FindByID", ctx, "user-id").Return(&models.User{ID: "user-id", Username: strPtr("alice"), Role: models.RoleUser}, nil)
	users.On("Update", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleUser && u.FirstName == "Alice"
	})).Return(nil)

	resp, err := svc.UpdateUser(ctx, userCaller, "me", dto.UpdateUserRequest{
		Role:      rolePtr(models.RoleAdmin),
		FirstName: strPtr("Alice"),
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, resp.Role)
	users.AssertExpectations(t)
}

func TestUpdateUser_AdminChangesRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, nil, discardLogger())

	users.On("FindByUsername", ctx, "alice").Return(&models.User{ID: "user-id", Username: strPtr("alice"), Role: models.RoleUser}, nil)
	users.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	resp, err := svc.UpdateUser(ctx, adminCaller, "alice", dto.UpdateUserRequest{Role: rolePtr(models.RoleModerator)})
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, resp.Role)

	_, err = svc.UpdateUser(ctx, adminCaller, "alice", dto.UpdateUserRequest{Role: rolePtr("superuser")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateUser_Username(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, nil, discardLogger())

	users.On("FindByID", ctx, "user-id").Return(&models.User{ID: "user-id", Username: strPtr("alice")}, nil)
	users.On("FindByUsername", ctx, "bob").Return(&models.User{ID: "bob-id"}, nil)

	_, err := svc.UpdateUser(ctx, userCaller, "me", dto.UpdateUserRequest{Username: strPtr("bob")})
	assert.Equal(t, ErrUsernameInUse, err)

	_, err = svc.UpdateUser(ctx, userCaller, "me", dto.UpdateUserRequest{Username: strPtr("me")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteUser(t *testing.T) {
	users := new(MockUserRepository)
	ratings := new(MockRatingCache)
	svc := NewUserService(users, ratings, discardLogger())

	users.On("FindByUsername", ctx, "bob").Return(&models.User{ID: "bob-id"}, nil)
	users.On("Delete", ctx, "bob-id").Return([]int64{1, 3}, nil)
	users.On("FindByUsername", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)
	ratings.On("Invalidate", ctx, []int64{1, 3}).Return(nil)

	assert.NoError(t, svc.DeleteUser(ctx, "bob"))
	assert.Equal(t, ErrUserNotFound, svc.DeleteUser(ctx, "ghost"))
	users.AssertExpectations(t)
	ratings.AssertExpectations(t)
}

func TestDeleteUser_WithoutReviews(t *testing.T) {
	users := new(MockUserRepository)
	ratings := new(MockRatingCache)
	svc := NewUserService(users, ratings, discardLogger())

	users.On("FindByUsername", ctx, "carol").Return(&models.User{ID: "carol-id"}, nil)
	users.On("Delete", ctx, "carol-id").Return(nil, nil)

	assert.NoError(t, svc.DeleteUser(ctx, "carol"))
	ratings.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestDeleteUser_CacheFailureIsNotFatal(t *testing.T) {
	users := new(MockUserRepository)
	ratings := new(MockRatingCache)
	svc := NewUserService(users, ratings, discardLogger())

	users.On("FindByUsername", ctx, "bob").Return(&models.User{ID: "bob-id"}, nil)
	users.On("Delete", ctx, "bob-id").Return([]int64{1}, nil)
	ratings.On("Invalidate", ctx, []int64{1}).Return(errors.New("redis down"))

	assert.NoError(t, svc.DeleteUser(ctx, "bob"))
}

func TestCreateSuperuser(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, nil, discardLogger())

	users.On("FindByEmail", ctx, "root@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.CreateSuperuser(ctx, "root@example.com", "s3cret", "")

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Nil(t, user.Username)
	assert.NoError(t, auth.VerifyPassword(user.Password, "s3cret"))

	_, err = svc.CreateSuperuser(ctx, "root@example.com", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListUsers(t *testing.T) {
	users := new(MockUserRepository)

	users.On("List", ctx, 2, 1).Return([]models.User{{ID: "b", Username: strPtr("bob")}}, int64(3), nil)

	page, err := NewUserService(users, nil, discardLogger()).ListUsers(ctx, 2, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Results, 1)
}
