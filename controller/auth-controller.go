package controller

import (
	"pitchday/auth"
	"pitchday/config"

	"github.com/gin-gonic/gin"
)

type AuthController struct{}

func setupAuthController() []RouteInfo {
	e := &AuthController{}
	return []RouteInfo{
		{Method: "POST", Path: "admin/login", HandlerFunc: e.loginHandler()},
		{Method: "POST", Path: "admin/logout", HandlerFunc: e.logoutHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
	}
}

// @id AdminLogin
// @Description Admin login with username and password. Sets the session cookie used by all admin endpoints.
// @Tags admin
// @Accept json
// @Router /admin/login [post]
// @Param body body AdminLogin true "Credentials"
// @Success 200
func (e *AuthController) loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var login AdminLogin
		if err := c.BindJSON(&login); err != nil {
			c.JSON(400, gin.H{"error": "Username and password required"})
			return
		}
		cfg := config.Env()
		if login.Username != cfg.AdminUsername || login.Password != cfg.AdminPassword || cfg.AdminPassword == "" {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}
		token, err := auth.CreateAdminToken(login.Username)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.SetCookie("auth", token, 12*60*60, "/", "", config.IsProduction(), true)
		c.JSON(200, gin.H{
			"message": "Login successful",
			"user":    gin.H{"username": login.Username},
		})
	}
}

// @id AdminLogout
// @Description Clears the admin session cookie.
// @Tags admin
// @Router /admin/logout [post]
// @Success 200
func (e *AuthController) logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("auth", "", -1, "/", "", config.IsProduction(), true)
		c.JSON(200, gin.H{"message": "Logout successful"})
	}
}

type AdminLogin struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
