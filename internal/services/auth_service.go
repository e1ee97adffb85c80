package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/workrec/workhour-api/internal/constants"
	"github.com/workrec/workhour-api/internal/dto"
	"github.com/workrec/workhour-api/internal/models"
	"github.com/workrec/workhour-api/internal/repository"
	"github.com/workrec/workhour-api/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPhoneRequired        = errors.New("phone is required")
	ErrUserAlreadyExists    = errors.New("phone already registered")
	ErrInvalidCredentials   = errors.New("invalid phone or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToCreateOrg    = errors.New("failed to create organization")
	ErrFailedToAddMember    = errors.New("failed to add user to organization")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	verifier CodeVerifier
	tokens   *token.Manager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, verifier CodeVerifier, tokens *token.Manager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
		verifier: verifier,
		tokens:   tokens,
	}
}

// LoginResult is the payload returned on successful login or registration.
type LoginResult struct {
	AccessToken string          `json:"access_token"`
	User        *dto.ProfileDTO `json:"user"`
	IsNewUser   bool            `json:"is_new_user"`
}

// LoginOrRegister verifies the code, then logs the phone in, registering it
// first when unknown. The code check happens before any database access.
func (s *AuthService) LoginOrRegister(phone, code string) (*LoginResult, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	if err := s.verifier.Verify(phone, code); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByPhone(phone)
	isNewUser := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}

		user = &models.User{Phone: phone}
		if err := s.createWithDefaultOrganization(user); err != nil {
			return nil, err
		}
		isNewUser = true
	}

	return s.loginResult(user, isNewUser)
}

// RegisterInput represents the required information to register by password.
type RegisterInput struct {
	Phone    string
	Password string
	Name     string
	Avatar   string
}

// Register creates a new user along with their default organization.
func (s *AuthService) Register(input RegisterInput) (*LoginResult, error) {
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByPhone(phone); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Phone:        phone,
		Name:         input.Name,
		Avatar:       input.Avatar,
		PasswordHash: string(hashedPassword),
	}
	if err := s.createWithDefaultOrganization(user); err != nil {
		return nil, err
	}

	return s.loginResult(user, true)
}

// GetProfile assembles the user's profile: active memberships, the current
// org, and the role derived from the membership matching current_org_id.
func (s *AuthService) GetProfile(userID uint64) (*dto.ProfileDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	memberships, err := s.orgRepo.ListMembershipsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	profile := &dto.ProfileDTO{
		UserDTO: dto.ToUserDTO(*user),
		Role:    "user",
		Organizations: lo.Map(memberships, func(m models.OrganizationMember, _ int) dto.OrganizationWithRoleDTO {
			return dto.ToOrganizationWithRoleDTO(m)
		}),
	}

	if current, ok := lo.Find(memberships, func(m models.OrganizationMember) bool {
		return m.OrganizationID == user.CurrentOrgID
	}); ok {
		profile.Role = string(current.Role)
		org := dto.ToOrganizationDTO(current.Organization)
		profile.CurrentOrg = &org
	}

	return profile, nil
}

// IssueToken re-signs a token carrying the user's current org context. Called
// after org-affecting changes so the client's cached token catches up.
func (s *AuthService) IssueToken(userID uint64) (string, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	return s.tokens.Issue(user.ID, user.Phone, user.CurrentOrgID)
}

// Login verifies password credentials and returns the login payload.
func (s *AuthService) Login(phone, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByPhone(phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.loginResult(user, false)
}

func (s *AuthService) createWithDefaultOrganization(user *models.User) error {
	org := &models.Organization{
		Name: constants.DefaultOrganizationName,
	}
	member := &models.OrganizationMember{
		Name:     user.Name,
		Role:     models.RoleOwner,
		WageType: models.WageTypeDay,
		Status:   models.MemberStatusActive,
		JoinedAt: time.Now(),
	}

	if err := s.userRepo.CreateWithDefaultOrganization(user, org, member); err != nil {
		switch {
		case errors.Is(err, repository.ErrCreateUser):
			return ErrFailedToCreateUser
		case errors.Is(err, repository.ErrCreateOrganization):
			return ErrFailedToCreateOrg
		case errors.Is(err, repository.ErrCreateOrganizationMember):
			return ErrFailedToAddMember
		default:
			return fmt.Errorf("failed to complete registration: %w", err)
		}
	}

	return nil
}

func (s *AuthService) loginResult(user *models.User, isNewUser bool) (*LoginResult, error) {
	accessToken, err := s.tokens.Issue(user.ID, user.Phone, user.CurrentOrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	profile, err := s.GetProfile(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: accessToken,
		User:        profile,
		IsNewUser:   isNewUser,
	}, nil
}
