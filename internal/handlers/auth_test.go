package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/workrec/workhour-api/internal/constants"
	"github.com/workrec/workhour-api/internal/database"
	"github.com/workrec/workhour-api/internal/dto"
	"github.com/workrec/workhour-api/internal/middleware"
	"github.com/workrec/workhour-api/internal/models"
	"github.com/workrec/workhour-api/internal/repository"
	"github.com/workrec/workhour-api/internal/response"
	"github.com/workrec/workhour-api/internal/services"
	"github.com/workrec/workhour-api/internal/token"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnvelope mirrors the response envelope with raw data items so each test
// can decode into its own payload type.
type testEnvelope struct {
	Status struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	} `json:"status"`
	Data     []json.RawMessage `json:"data"`
	Property map[string]any    `json:"property"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) testEnvelope {
	t.Helper()

	require.Equal(t, http.StatusOK, w.Code)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	tokens      *token.Manager
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	tokens := token.NewManager("test-secret", 1)
	verifier := services.StaticCodeVerifier{Code: "123456"}
	authService := services.NewAuthService(userRepo, orgRepo, verifier, tokens)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		tokens:      tokens,
	}
}

type loginResultPayload struct {
	AccessToken string         `json:"access_token"`
	User        dto.ProfileDTO `json:"user"`
	IsNewUser   bool           `json:"is_new_user"`
}

func TestAuthHandler_LoginOrRegister_NewPhone(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/login-or-register", env.handler.LoginOrRegister)

	w := postJSON(t, r, "/api/auth/login-or-register", map[string]string{
		"phone": "13800138000",
		"code":  "123456",
	})

	resp := decodeEnvelope(t, w)
	require.Equal(t, response.CodeOK, resp.Status.Code)
	require.Len(t, resp.Data, 1)

	var result loginResultPayload
	require.NoError(t, json.Unmarshal(resp.Data[0], &result))
	require.NotEmpty(t, result.AccessToken)
	require.True(t, result.IsNewUser)
	require.Equal(t, "13800138000", result.User.Phone)
	require.Equal(t, "owner", result.User.Role)
	require.NotNil(t, result.User.CurrentOrg)
	require.Equal(t, constants.DefaultOrganizationName, result.User.CurrentOrg.Name)
	require.Equal(t, result.User.ID, result.User.CurrentOrg.OwnerID)

	session, err := env.tokens.Verify(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, result.User.ID, session.UserID)
	require.Equal(t, result.User.CurrentOrg.ID, session.OrgID)
}

func TestAuthHandler_LoginOrRegister_ExistingPhone(t *testing.T) {
	env := setupAuthTestEnv(t)

	first, err := env.authService.LoginOrRegister("13800138000", "123456")
	require.NoError(t, err)
	require.True(t, first.IsNewUser)

	r := gin.New()
	r.POST("/api/auth/login-or-register", env.handler.LoginOrRegister)

	w := postJSON(t, r, "/api/auth/login-or-register", map[string]string{
		"phone": "13800138000",
		"code":  "123456",
	})

	resp := decodeEnvelope(t, w)
	require.Equal(t, response.CodeOK, resp.Status.Code)

	var result loginResultPayload
	require.NoError(t, json.Unmarshal(resp.Data[0], &result))
	require.False(t, result.IsNewUser)
	require.Equal(t, first.User.ID, result.User.ID)

	var userCount int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&userCount).Error)
	require.EqualValues(t, 1, userCount)
}

func TestAuthHandler_LoginOrRegister_WrongCode(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/login-or-register", env.handler.LoginOrRegister)

	w := postJSON(t, r, "/api/auth/login-or-register", map[string]string{
		"phone": "13800138000",
		"code":  "000000",
	})

	resp := decodeEnvelope(t, w)
	require.Equal(t, response.CodeError, resp.Status.Code)
	require.Equal(t, services.ErrInvalidVerifyCode.Error(), resp.Status.Msg)

	// The code check runs before any user lookup, so nothing was written.
	var userCount int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&userCount).Error)
	require.EqualValues(t, 0, userCount)
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/register", env.handler.Register)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"phone":    "13900139000",
		"password": "supersecret",
		"name":     "Zhang San",
	})

	resp := decodeEnvelope(t, w)
	require.Equal(t, response.CodeOK, resp.Status.Code)

	var result loginResultPayload
	require.NoError(t, json.Unmarshal(resp.Data[0], &result))
	require.NotEmpty(t, result.AccessToken)
	require.Equal(t, "Zhang San", result.User.Name)
	require.NotNil(t, result.User.CurrentOrg)
	require.Equal(t, constants.DefaultOrganizationName, result.User.CurrentOrg.Name)

	// Same phone cannot register twice.
	w = postJSON(t, r, "/api/auth/register", map[string]string{
		"phone":    "13900139000",
		"password": "supersecret",
	})
	resp = decodeEnvelope(t, w)
	require.Equal(t, response.CodeError, resp.Status.Code)
	require.Equal(t, services.ErrUserAlreadyExists.Error(), resp.Status.Msg)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Phone:    "13900139000",
		Password: "supersecret",
		Name:     "Zhang San",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"phone":    "13900139000",
		"password": "supersecret",
	})

	resp := decodeEnvelope(t, w)
	require.Equal(t, response.CodeOK, resp.Status.Code)

	var result loginResultPayload
	require.NoError(t, json.Unmarshal(resp.Data[0], &result))
	require.NotEmpty(t, result.AccessToken)
	require.False(t, result.IsNewUser)
	require.Equal(t, "Zhang San", result.User.Name)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Phone:    "13900139000",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"phone":    "13900139000",
		"password": "wrong-password",
	})

	resp := decodeEnvelope(t, w)
	require.Equal(t, response.CodeError, resp.Status.Code)
	require.Equal(t, services.ErrInvalidCredentials.Error(), resp.Status.Msg)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/register", env.handler.Register)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"phone":    "13900139000",
		"password": "short",
	})

	resp := decodeEnvelope(t, w)
	require.Equal(t, response.CodeError, resp.Status.Code)
	require.Equal(t, services.ErrPasswordTooShort.Error(), resp.Status.Msg)
}

func TestAuthHandler_Profile_WithBearerToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	result, err := env.authService.LoginOrRegister("13800138000", "123456")
	require.NoError(t, err)

	r := gin.New()
	protected := r.Group("/api", middleware.RequireAuth(env.tokens))
	protected.POST("/auth/profile", env.handler.Profile)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/profile", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+result.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := decodeEnvelope(t, w)
	require.Equal(t, response.CodeOK, resp.Status.Code)

	var profile dto.ProfileDTO
	require.NoError(t, json.Unmarshal(resp.Data[0], &profile))
	require.Equal(t, "13800138000", profile.Phone)
	require.Len(t, profile.Organizations, 1)
}

func TestAuthHandler_Profile_MissingToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	protected := r.Group("/api", middleware.RequireAuth(env.tokens))
	protected.POST("/auth/profile", env.handler.Profile)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/profile", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := decodeEnvelope(t, w)
	require.Equal(t, response.CodeLoginExpired, resp.Status.Code)
	require.Equal(t, response.MsgLoginExpired, resp.Status.Msg)
}
