package routes

import (
	"encoding/json"
	"strings"

	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/models"
	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/storage"
	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

type UpsertProfileInput struct {
	Email    string            `json:"userEmail" validate:"required,email"`
	Gender   string            `json:"gender" validate:"max=20"`
	Age      int               `json:"age" validate:"gte=0,lte=150"`
	Birthday string            `json:"birthday" validate:"max=20"`
	Address  map[string]string `json:"address"`
}

// UpsertUserProfile inserts the profile on first save and replaces the
// matched fields on every save after that. The unique index on user_email
// makes the insert-or-update a single statement instead of a find-then-write.
func UpsertUserProfile(ctx iris.Context) {
	var input UpsertProfileInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	address := input.Address
	if address == nil {
		address = map[string]string{}
	}
	addressJSON, _ := json.Marshal(address)

	profile := models.UserProfile{
		Email:    strings.ToLower(input.Email),
		Gender:   input.Gender,
		Age:      input.Age,
		Birthday: input.Birthday,
		Address:  datatypes.JSON(addressJSON),
	}

	result := storage.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_email"}},
		DoUpdates: clause.AssignmentColumns([]string{"gender", "age", "birthday", "address", "updated_at"}),
	}).Create(&profile)

	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&profile)
}

// GetUserProfile returns the stored profile, or an empty object when the
// visitor has never saved one. The client treats {} as "nothing saved yet".
func GetUserProfile(ctx iris.Context) {
	email := strings.ToLower(ctx.Params().Get("email"))

	var profile models.UserProfile
	profileExists := storage.DB.Where("user_email = ?", email).Limit(1).Find(&profile)
	if profileExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if profileExists.RowsAffected == 0 {
		ctx.JSON(iris.Map{})
		return
	}

	ctx.JSON(&profile)
}
