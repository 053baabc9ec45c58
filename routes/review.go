package routes

import (
	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/models"
	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/storage"
	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/utils"

	"github.com/kataras/iris/v12"
)

type CreateReviewInput struct {
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Body          string `json:"body" validate:"required,max=1000"`
	CustomerName  string `json:"customerName" validate:"max=100"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhoto string `json:"customerPhoto" validate:"max=512"`
}

func CreateReview(ctx iris.Context) {
	var input CreateReviewInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	review := models.Review{
		Rating:        input.Rating,
		Body:          input.Body,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhoto: input.CustomerPhoto,
	}

	result := storage.DB.Create(&review)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&review)
}

// ListReviews returns every testimonial; the landing page shows them all.
func ListReviews(ctx iris.Context) {
	var reviews []models.Review
	result := storage.DB.Order("created_at DESC").Find(&reviews)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reviews)
}
