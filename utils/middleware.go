package utils

import (
	"strings"

	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/models"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// EmailParamMiddleware rejects requests whose verified identity does not
// match the {email} path parameter. Emails compare case-insensitively since
// tokens and rows are stored lowercased. Admins may read any scope.
func EmailParamMiddleware(ctx iris.Context) {
	email := strings.ToLower(ctx.Params().Get("email"))

	claims := jwt.Get(ctx).(*AccessToken)

	if strings.ToLower(claims.Email) != email && claims.Role != models.RoleAdmin {
		CreateForbidden(ctx)
		return
	}
	ctx.Next()
}

// AdminOnlyMiddleware ensures the requester has the admin role.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != models.RoleAdmin {
		CreateForbidden(ctx)
		return
	}
	ctx.Next()
}
