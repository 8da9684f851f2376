package controller

import (
	"pitchday/auth"
	"pitchday/repository"
	"pitchday/service"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RouteInfo struct {
	Method             string
	Path               string
	HandlerFunc        gin.HandlerFunc
	Authenticated      bool
	RoleRequired       []string
	JudgeAuthenticated bool
}

func SetRoutes(r *gin.Engine, db *gorm.DB, cacheStore *persistence.InMemoryStore) {
	rankingController := NewRankingController(db)

	routes := make([]RouteInfo, 0)
	routes = append(routes, setupAuthController()...)
	routes = append(routes, setupEventController(db)...)
	routes = append(routes, setupCriterionController(db)...)
	routes = append(routes, setupTeamController(db)...)
	routes = append(routes, setupJudgeController(db)...)
	routes = append(routes, setupEvaluationController(db, rankingController)...)
	routes = append(routes, setupExportController(db)...)
	routes = append(routes, rankingController.routes(cacheStore)...)

	judgeService := service.NewJudgeService(db)
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated {
			handlerfuncs = append(handlerfuncs, AuthMiddleware(route.RoleRequired))
		}
		if route.JudgeAuthenticated {
			handlerfuncs = append(handlerfuncs, JudgeAuthMiddleware(judgeService))
		}
		handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		r.Handle(route.Method, "/api/"+route.Path, handlerfuncs...)
	}
}

func AuthMiddleware(roles []string) gin.HandlerFunc {
	return func(r *gin.Context) {
		authCookie, err := r.Cookie("auth")
		if err != nil {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		token, err := auth.ParseToken(authCookie)
		if err != nil {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		if !token.Valid {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}

		claims := &auth.Claims{}
		claims.FromJWTClaims(token.Claims)
		if err := claims.Valid(); err != nil {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		if len(roles) == 0 {
			r.Next()
			return
		}

		for _, requiredRole := range roles {
			for _, userRole := range claims.Permissions {
				if requiredRole == userRole {
					r.Next()
					return
				}
			}
		}
		r.JSON(403, gin.H{"error": "Unauthorized"})
		r.Abort()
	}
}

// JudgeAuthMiddleware resolves the judge's opaque bearer token, accepted
// from the Authorization header ("Token <uuid>" or "Bearer <uuid>") or the
// token query parameter.
func JudgeAuthMiddleware(judgeService *service.JudgeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractJudgeToken(c)
		if token == "" {
			c.JSON(401, gin.H{"error": "Token required"})
			c.Abort()
			return
		}
		judge, err := judgeService.GetJudgeByToken(token)
		if err != nil {
			c.JSON(401, gin.H{"error": "Invalid or inactive token"})
			c.Abort()
			return
		}
		c.Set("judge", judge)
		c.Next()
	}
}

func extractJudgeToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	for _, prefix := range []string{"Token ", "Bearer "} {
		if len(header) > len(prefix) && header[:len(prefix)] == prefix {
			return header[len(prefix):]
		}
	}
	return c.Query("token")
}

func getJudge(c *gin.Context) *repository.Judge {
	if value, ok := c.Get("judge"); ok {
		if judge, ok := value.(*repository.Judge); ok {
			return judge
		}
	}
	return nil
}
