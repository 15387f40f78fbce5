package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"user-graph/internal/service"
)

// BearerAuthMiddleware anota el contexto del request con el id de usuario
// cuando el header Authorization trae un token válido. Nunca corta el
// request: un header ausente, malformado o con token inválido deja el
// contexto sin identidad y el resolver `me` devuelve null.
func BearerAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.Next()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.Next()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		userID, err := jwtSvc.Verify(token)
		if err != nil {
			c.Next()
			return
		}

		ctx := service.ContextWithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
