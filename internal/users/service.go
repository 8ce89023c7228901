package users

import (
	"errors"
	"fmt"
	"time"

	"ms-events/internal/auth"
	"ms-events/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailInUse          = errors.New("E-mail já cadastrado")
	ErrUserNotFound        = errors.New("Usuário não encontrado")
	ErrWrongPassword       = errors.New("Senha incorreta")
	ErrOldPasswordRequired = errors.New("Você deve informar a senha")
	ErrPasswordMismatch    = errors.New("Você deve confirmar a senha")
	ErrAvatarNotFound      = errors.New("Avatar não encontrado")
	ErrAvatarWrongType     = errors.New("Sua foto deve ser um avatar")
)

type DBLayer interface {
	CreateUser(user models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserWithAvatar(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user models.User) error
	GetFileByID(id string) (*models.File, error)
}

type UserService struct {
	DB     DBLayer
	Tokens *auth.Issuer
}

func NewUserService(db DBLayer, tokens *auth.Issuer) *UserService {
	return &UserService{DB: db, Tokens: tokens}
}

// Register creates a user with a bcrypt-hashed password and returns the user
// together with a fresh session token.
func (s *UserService) Register(req models.SignupRequest) (*models.SessionResponse, error) {
	existing, err := s.DB.GetUserByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.DB.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.session(&user)
}

// Authenticate verifies the credentials and returns the user with a session
// token.
func (s *UserService) Authenticate(req models.SessionRequest) (*models.SessionResponse, error) {
	user, err := s.DB.GetUserByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrWrongPassword
	}

	return s.session(user)
}

// UpdateProfile applies a partial profile update. Changing the password
// requires the current one; an avatar reference must resolve to a File of
// type avatar.
func (s *UserService) UpdateProfile(callerID string, req models.UserUpdateRequest) (*models.UserView, error) {
	user, err := s.DB.GetUserByID(callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", callerID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Email != "" && req.Email != user.Email {
		taken, err := s.DB.GetUserByEmail(req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to look up email: %w", err)
		}
		if taken != nil {
			return nil, ErrEmailInUse
		}
		user.Email = req.Email
	}

	if req.Password != "" {
		if req.OldPassword == "" {
			return nil, ErrOldPasswordRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			return nil, ErrWrongPassword
		}
		if req.ConfirmPassword != req.Password {
			return nil, ErrPasswordMismatch
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if req.AvatarID != "" && req.AvatarID != user.AvatarID {
		file, err := s.DB.GetFileByID(req.AvatarID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up avatar %s: %w", req.AvatarID, err)
		}
		if file == nil {
			return nil, ErrAvatarNotFound
		}
		if file.Type != models.FileTypeAvatar {
			return nil, ErrAvatarWrongType
		}
		user.AvatarID = req.AvatarID
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	user.UpdatedAt = time.Now()

	if err := s.DB.UpdateUser(*user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", callerID, err)
	}

	updated, err := s.DB.GetUserWithAvatar(callerID)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("failed to reload user %s: %w", callerID, err)
	}

	view := userView(updated)
	return &view, nil
}

func (s *UserService) session(user *models.User) (*models.SessionResponse, error) {
	token, err := s.Tokens.IssueToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &models.SessionResponse{User: userView(user), Token: token}, nil
}

func userView(user *models.User) models.UserView {
	return models.UserView{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar.View(),
	}
}
