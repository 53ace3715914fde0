package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"societyBack/internal/models"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, requestID, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))
	providerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleProvider))

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/logout", authMiddleware.ThenFunc(app.userHandler.Logout))
	mux.Get("/user/me", authMiddleware.ThenFunc(app.userHandler.Me))
	mux.Post("/user/fcm-token", authMiddleware.ThenFunc(app.userHandler.RegisterFCMToken))

	// Wishlist
	mux.Get("/user/wishlist", authMiddleware.ThenFunc(app.wishlistHandler.List))
	mux.Get("/user/wishlist/:serviceId", authMiddleware.ThenFunc(app.wishlistHandler.Status))
	mux.Post("/user/wishlist/:serviceId", authMiddleware.ThenFunc(app.wishlistHandler.Add))
	mux.Del("/user/wishlist/:serviceId", authMiddleware.ThenFunc(app.wishlistHandler.Remove))

	// Providers
	mux.Get("/provider-profile", standardMiddleware.ThenFunc(app.providerHandler.ListProviders))
	mux.Post("/provider-profile", providerMiddleware.ThenFunc(app.providerHandler.UpsertProfile))
	mux.Post("/provider-profile/offerings", providerMiddleware.ThenFunc(app.providerHandler.AddOffering))
	mux.Put("/provider-profile/offerings/:id", providerMiddleware.ThenFunc(app.providerHandler.UpdateOffering))
	mux.Del("/provider-profile/offerings/:id", providerMiddleware.ThenFunc(app.providerHandler.DeleteOffering))
	mux.Post("/provider-profile/offerings/:id/images", providerMiddleware.ThenFunc(app.providerHandler.UploadImages))
	mux.Get("/provider-profile/:id", standardMiddleware.ThenFunc(app.providerHandler.GetProvider))

	// Comments
	mux.Get("/comments/get-comments/:serviceId", standardMiddleware.ThenFunc(app.commentHandler.GetComments))
	mux.Get("/comments/top-categories", standardMiddleware.ThenFunc(app.topHandler.TopCategories))
	mux.Get("/comments/top-services", standardMiddleware.ThenFunc(app.topHandler.TopServices))
	mux.Post("/comments/create-comment/:serviceId", authMiddleware.ThenFunc(app.commentHandler.CreateComment))
	mux.Put("/comments/update-comment/:commentId", authMiddleware.ThenFunc(app.commentHandler.UpdateComment))
	mux.Del("/comments/delete/:commentId", authMiddleware.ThenFunc(app.commentHandler.DeleteComment))
	mux.Post("/comments/:commentId/reply", providerMiddleware.ThenFunc(app.commentHandler.AddReply))
	mux.Put("/comments/:commentId/reply", providerMiddleware.ThenFunc(app.commentHandler.UpdateReply))
	mux.Del("/comments/:commentId/reply", providerMiddleware.ThenFunc(app.commentHandler.DeleteReply))

	// Websocket
	mux.Get("/ws/comments/:serviceId", alice.New(app.recoverPanic, requestID, app.logRequest).ThenFunc(app.hub.ServeComments))

	return mux
}
