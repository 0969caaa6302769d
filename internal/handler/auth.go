package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"k8s.io/klog/v2"

	"github.com/anuban-lab/sarabun/dao/model"
	"github.com/anuban-lab/sarabun/dao/query"
	"github.com/anuban-lab/sarabun/internal/resputil"
	"github.com/anuban-lab/sarabun/internal/util"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewAuthMgr)
}

type AuthMgr struct {
	name     string
	tokenMgr *util.TokenManager
}

func NewAuthMgr(_ *RegisterConfig) Manager {
	return &AuthMgr{
		name:     "auth",
		tokenMgr: util.GetTokenMgr(),
	}
}

func (mgr *AuthMgr) GetName() string { return mgr.name }

func (mgr *AuthMgr) RegisterPublic(g *gin.RouterGroup) {
	g.POST("/login", mgr.Login)
	g.POST("/refresh", mgr.RefreshToken)
}

func (mgr *AuthMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *AuthMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	LoginReq struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	LoginResp struct {
		AccessToken  string     `json:"accessToken"`
		RefreshToken string     `json:"refreshToken"`
		Role         model.Role `json:"role"`
	}

	RefreshReq struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
)

// Login godoc
// @Summary User login
// @Description Verifies credentials and issues a JWT token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param data body LoginReq true "credentials"
// @Success 200 {object} resputil.Response[LoginResp] "token pair"
// @Failure 401 {object} resputil.Response[any] "invalid credentials"
// @Router /v1/auth/login [post]
func (mgr *AuthMgr) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var user model.User
	err := query.GetDB().WithContext(c).Where("name = ?", req.Username).First(&user).Error
	if err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "Invalid credentials", resputil.InvalidCredentials)
		return
	}
	if user.Password == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)) != nil {
		klog.Warningf("failed login attempt for user %s", req.Username)
		resputil.HTTPError(c, http.StatusUnauthorized, "Invalid credentials", resputil.InvalidCredentials)
		return
	}
	if user.Status != model.StatusActive {
		resputil.HTTPError(c, http.StatusUnauthorized, "User is not active", resputil.UserNotAllowed)
		return
	}

	mgr.issueTokens(c, &user)
}

// RefreshToken godoc
// @Summary Refresh the token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param data body RefreshReq true "refresh token"
// @Success 200 {object} resputil.Response[LoginResp] "new token pair"
// @Failure 401 {object} resputil.Response[any] "invalid token"
// @Router /v1/auth/refresh [post]
func (mgr *AuthMgr) RefreshToken(c *gin.Context) {
	var req RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	msg, err := mgr.tokenMgr.CheckToken(req.RefreshToken)
	if err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "Invalid refresh token", resputil.TokenInvalid)
		return
	}

	// re-read the user so a role change invalidates old refresh tokens
	var user model.User
	if err := query.GetDB().WithContext(c).First(&user, msg.UserID).Error; err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "User not found", resputil.TokenInvalid)
		return
	}

	mgr.issueTokens(c, &user)
}

func (mgr *AuthMgr) issueTokens(c *gin.Context, user *model.User) {
	nickname := user.Name
	if user.Nickname != nil {
		nickname = *user.Nickname
	}
	msg := util.JWTMessage{
		UserID:   user.ID,
		Username: user.Name,
		Nickname: nickname,
		Role:     user.Role,
	}

	accessToken, refreshToken, err := mgr.tokenMgr.CreateTokens(&msg)
	if err != nil {
		klog.Errorf("failed to create tokens for user %s: %v", user.Name, err)
		resputil.Error(c, "failed to create tokens", resputil.NotSpecified)
		return
	}

	resputil.Success(c, LoginResp{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         user.Role,
	})
}
