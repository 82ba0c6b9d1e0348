package controllers

import (
	"github.com/franciscosanchezn/gin-foodgram-api/internal/middleware"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every controller mounted by RegisterRoutes
type Handlers struct {
	Auth       *AuthController
	Users      UserController
	Recipes    RecipeController
	Catalogue  CatalogueController
	ShortLinks *ShortLinkController
}

// RegisterRoutes mounts the API under /api and the short link redirect under /s
func RegisterRoutes(router *gin.Engine, h Handlers, tokens middleware.TokenParser) {
	required := middleware.JWTAuth(tokens)
	optional := middleware.OptionalJWTAuth(tokens)
	admin := middleware.RequireRole(models.RoleAdmin)

	api := router.Group("/api")
	{
		api.POST("/auth/token/login", h.Auth.Login)

		users := api.Group("/users")
		{
			users.GET("", optional, h.Users.ListUsers)
			users.POST("", h.Users.Register)
			users.GET("/me", required, h.Users.Me)
			users.PUT("/me/avatar", required, h.Users.SetAvatar)
			users.DELETE("/me/avatar", required, h.Users.DeleteAvatar)
			users.POST("/set_password", required, h.Users.SetPassword)
			users.GET("/subscriptions", required, h.Users.ListSubscriptions)
			users.GET("/:id", optional, h.Users.GetUser)
			users.POST("/:id/subscribe", required, h.Users.Subscribe)
			users.DELETE("/:id/subscribe", required, h.Users.Unsubscribe)
			users.DELETE("/:id", required, admin, h.Users.DeleteUser)
		}

		api.GET("/tags", h.Catalogue.ListTags)
		api.GET("/tags/:id", h.Catalogue.GetTag)
		api.POST("/tags", required, admin, h.Catalogue.CreateTag)
		api.GET("/ingredients", h.Catalogue.ListIngredients)
		api.GET("/ingredients/:id", h.Catalogue.GetIngredient)

		recipes := api.Group("/recipes")
		{
			recipes.GET("", optional, h.Recipes.ListRecipes)
			recipes.POST("", required, h.Recipes.CreateRecipe)
			recipes.GET("/download_shopping_cart", required, h.Recipes.DownloadShoppingCart)
			recipes.GET("/:id", optional, h.Recipes.GetRecipe)
			recipes.PATCH("/:id", required, h.Recipes.UpdateRecipe)
			recipes.DELETE("/:id", required, h.Recipes.DeleteRecipe)
			recipes.POST("/:id/favorite", required, h.Recipes.AddFavorite)
			recipes.DELETE("/:id/favorite", required, h.Recipes.RemoveFavorite)
			recipes.POST("/:id/shopping_cart", required, h.Recipes.AddToShoppingCart)
			recipes.DELETE("/:id/shopping_cart", required, h.Recipes.RemoveFromShoppingCart)
			recipes.GET("/:id/get-link", h.Recipes.GetShortLink)
		}
	}

	router.GET("/s/:token", h.ShortLinks.Redirect)
}
