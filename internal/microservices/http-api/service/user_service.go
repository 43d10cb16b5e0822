package service

import (
	"context"
	"log/slog"

	"yamdb/internal/cache"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/middleware/auth"
)

type UserService interface {
	ListUsers(ctx context.Context, page, pageSize int) (*dto.Page[dto.UserResponse], error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, caller policy.AuthContext, username string) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, caller policy.AuthContext, username string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, username string) error
	CreateSuperuser(ctx context.Context, email, password, username string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	ratings  cache.RatingCache
	log      *slog.Logger
}

// NewUserService wires user management. A nil ratings cache disables caching.
func NewUserService(userRepo repository.UserRepository, ratings cache.RatingCache, log *slog.Logger) UserService {
	if ratings == nil {
		ratings = &cache.RedisRatingCache{}
	}
	return &userService{userRepo: userRepo, ratings: ratings, log: log}
}

func (s *userService) ListUsers(ctx context.Context, page, pageSize int) (*dto.Page[dto.UserResponse], error) {
	users, total, err := s.userRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	results := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		results = append(results, dto.UserFromModel(&users[i]))
	}
	return dto.NewPage(results, total, page, pageSize), nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validateUsername(req.Username); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}

	username := req.Username
	user := &models.User{
		Email:     email,
		Username:  &username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
		IsActive:  true,
	}
	if err := s.create(ctx, user); err != nil {
		return nil, err
	}

	resp := dto.UserFromModel(user)
	return &resp, nil
}

// CreateSuperuser creates an admin account that signs in with a password.
func (s *userService) CreateSuperuser(ctx context.Context, email, password, username string) (*models.User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, invalidf("password is required")
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if username != "" {
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		user.Username = &username
	}

	if err := s.create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) create(ctx context.Context, user *models.User) error {
	if _, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil {
		return ErrEmailInUse
	}
	if user.Username != nil {
		if _, err := s.userRepo.FindByUsername(ctx, *user.Username); err == nil {
			return ErrUsernameInUse
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return translate(err, nil, ErrUserExists)
	}
	return nil
}

// resolve loads the user addressed by username, where "me" is the caller.
func (s *userService) resolve(ctx context.Context, caller policy.AuthContext, username string) (*models.User, error) {
	var user *models.User
	var err error
	if username == models.MeAlias {
		user, err = s.userRepo.FindByID(ctx, caller.UserID)
	} else {
		user, err = s.userRepo.FindByUsername(ctx, username)
	}
	if err != nil {
		return nil, translate(err, ErrUserNotFound, nil)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, caller policy.AuthContext, username string) (*dto.UserResponse, error) {
	user, err := s.resolve(ctx, caller, username)
	if err != nil {
		return nil, err
	}

	resp := dto.UserFromModel(user)
	return &resp, nil
}

// UpdateUser applies a partial update. Only admins may change a role; for
// anyone else the role field is ignored.
func (s *userService) UpdateUser(ctx context.Context, caller policy.AuthContext, username string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.resolve(ctx, caller, username)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && (user.Username == nil || *req.Username != *user.Username) {
		if err := validateUsername(*req.Username); err != nil {
			return nil, err
		}
		if other, err := s.userRepo.FindByUsername(ctx, *req.Username); err == nil && other.ID != user.ID {
			return nil, ErrUsernameInUse
		}
		newUsername := *req.Username
		user.Username = &newUsername
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if email != user.Email {
			if other, err := s.userRepo.FindByEmail(ctx, email); err == nil && other.ID != user.ID {
				return nil, ErrEmailInUse
			}
			user.Email = email
		}
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil && caller.Is(models.RoleAdmin) {
		if err := validateRole(*req.Role); err != nil {
			return nil, err
		}
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, translate(err, nil, ErrUserExists)
	}

	resp := dto.UserFromModel(user)
	return &resp, nil
}

func (s *userService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return translate(err, ErrUserNotFound, nil)
	}
	titleIDs, err := s.userRepo.Delete(ctx, user.ID)
	if err != nil {
		return translate(err, ErrUserNotFound, nil)
	}
	// the user's reviews are gone, so are the cached means that counted them
	if len(titleIDs) > 0 {
		if err := s.ratings.Invalidate(ctx, titleIDs...); err != nil {
			s.log.WarnContext(ctx, "rating cache invalidation failed", "title_ids", titleIDs, "error", err)
		}
	}
	return nil
}
