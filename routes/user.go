package routes

import (
	"errors"
	"strings"

	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/models"
	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/storage"
	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type IssueTokenInput struct {
	Email   string `json:"email" validate:"required,email"`
	IDToken string `json:"idToken"`
}

// IssueToken signs the auth cookie for an email. When the client sends the
// identity-provider token alongside and AUTH_JWKS_URL is configured, the
// token is verified and its email claim wins over the submitted one.
func IssueToken(ctx iris.Context) {
	var input IssueTokenInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	email := strings.ToLower(input.Email)
	if input.IDToken != "" {
		verifiedEmail, verifyErr := utils.VerifyExternalIDToken(input.IDToken)
		if verifyErr != nil {
			utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid identity token.", ctx)
			return
		}
		email = strings.ToLower(verifiedEmail)
	}

	issueCookieForEmail(ctx, email)
}

func Logout(ctx iris.Context) {
	utils.ClearAuthCookie(ctx)
	ctx.JSON(iris.Map{"signOut": true})
}

type RegisterUserInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=256"`
}

func Register(ctx iris.Context) {
	var input RegisterUserInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, input.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser = models.User{
		Name:     input.Name,
		Email:    strings.ToLower(input.Email),
		Password: hashedPassword,
		Role:     models.RoleUser,
	}

	if err := storage.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.CreateEmailAlreadyRegistered(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	issueCookieForUser(ctx, newUser)
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login(ctx iris.Context) {
	var input LoginUserInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	errorMsg := "Invalid email or password."

	var existingUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, input.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(input.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	issueCookieForUser(ctx, existingUser)
}

func issueCookieForEmail(ctx iris.Context, email string) {
	// Role comes from the users table when the email is registered;
	// everyone else books as a plain user.
	role := models.RoleUser
	var user models.User
	if err := storage.DB.Select("id, role").Where("email = ?", email).First(&user).Error; err == nil && user.Role != "" {
		role = user.Role
	}

	token, tokenErr := utils.CreateAccessToken(email, role)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.SetAuthCookie(ctx, token)
	ctx.JSON(iris.Map{"success": true})
}

func issueCookieForUser(ctx iris.Context, user models.User) {
	token, tokenErr := utils.CreateAccessToken(user.Email, user.Role)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.SetAuthCookie(ctx, token)
	ctx.JSON(iris.Map{"success": true, "user": &user})
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
