package main

import (
	"log"
	"os"

	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/routes"
	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/storage"
	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the browser client; credentials needed for the auth cookie.
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	// The browser client carries the token in a cookie, not a header.
	accessTokenVerifier.Extractors = append(accessTokenVerifier.Extractors, func(ctx iris.Context) string {
		return ctx.GetCookie(utils.AuthCookieName)
	})
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	app.Get("/", func(ctx iris.Context) {
		ctx.WriteString("Welcome to Happiness Hill")
	})

	app.Post("/jwt", routes.IssueToken)
	app.Get("/logout", routes.Logout)
	app.Post("/register", routes.Register)
	app.Post("/login", routes.Login)

	app.Get("/rooms", routes.GetRooms)
	app.Get("/roomCount", routes.GetRoomCount)
	app.Get("/rooms/{id:uint}", routes.GetRoom)
	app.Get("/my-posted-rooms/{email}", accessTokenVerifierMiddleware, utils.EmailParamMiddleware, routes.GetRoomsByOwner)
	app.Post("/room", accessTokenVerifierMiddleware, routes.CreateRoom)
	app.Put("/rooms/{id:uint}", accessTokenVerifierMiddleware, routes.UpdateRoom)
	app.Delete("/rooms/{id:uint}", accessTokenVerifierMiddleware, routes.DeleteRoom)

	app.Post("/room-request", routes.CreateBooking)
	app.Get("/my-bookings/{email}", accessTokenVerifierMiddleware, utils.EmailParamMiddleware, routes.GetBookingsByCustomer)
	app.Get("/dashboard-bookings", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.GetDashboardBookings)
	app.Patch("/approve-booking/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.ApproveBooking)

	app.Post("/review", routes.CreateReview)
	app.Get("/reviews", routes.ListReviews)

	app.Put("/users", routes.UpsertUserProfile)
	app.Get("/users/{email}", routes.GetUserProfile)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Println("Server is running on PORT:", port)
	app.Listen(":" + port)
}
