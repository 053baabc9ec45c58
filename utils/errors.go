package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{
		"status": statusCode,
		"title":  title,
		"detail": detail,
	})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(
		iris.StatusInternalServerError,
		"Internal Server Error",
		"An unexpected error occurred.", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "Not Found", "Resource not found.", ctx)
}

func CreateForbidden(ctx iris.Context) {
	CreateError(iris.StatusForbidden, "Forbidden", "Forbidden Access", ctx)
}

func CreateUnauthorized(ctx iris.Context) {
	CreateError(iris.StatusUnauthorized, "Unauthorized", "Unauthorized Access", ctx)
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateError(iris.StatusConflict, "Conflict", "Email already registered.", ctx)
}

// HandleValidationErrors maps validator failures to a 400 with one entry
// per failed field; any other read error becomes a generic 400.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		validationErrors := make([]iris.Map, 0, len(errs))
		for _, validationErr := range errs {
			validationErrors = append(validationErrors, iris.Map{
				"field": validationErr.Field(),
				"tag":   validationErr.Tag(),
				"value": validationErr.Param(),
			})
		}

		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
			"status": iris.StatusBadRequest,
			"title":  "Validation Error",
			"errors": validationErrors,
		})
		return
	}

	CreateError(iris.StatusBadRequest, "Bad Request", err.Error(), ctx)
}
