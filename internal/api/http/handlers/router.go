package handlers

import (
	"github.com/gofiber/fiber/v2"

	httpapi "github.com/spec-kit/movie-service/internal/api/http"
	"github.com/spec-kit/movie-service/internal/api/dto"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Movies  *MoviesHandler
	Reviews *ReviewsHandler
	Users   *UsersHandler

	// GoogleEnabled gates the OAuth routes.
	GoogleEnabled bool
}

// RegisterRoutes wires every route through the request pipeline. Each entry
// declares its auth level and the shape of each fragment it consumes.
func RegisterRoutes(app *fiber.App, p *httpapi.Pipeline, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", p.Handle(httpapi.Route{
		Body:       dto.SignupBody,
		Controller: cfg.Auth.Signup,
	}))
	authGroup.Post("/login", p.Handle(httpapi.Route{
		Body:       dto.LoginBody,
		Controller: cfg.Auth.Login,
	}))
	authGroup.Post("/logout", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Controller: cfg.Auth.Logout,
	}))

	if cfg.GoogleEnabled {
		authGroup.Get("/signup/google", p.Handle(httpapi.Route{
			Controller: cfg.Auth.GoogleSignup,
		}))
		authGroup.Get("/signup/google/redirect", p.Handle(httpapi.Route{
			Query:      dto.GoogleCodeQuery,
			Controller: cfg.Auth.GoogleSignupRedirect,
		}))
		authGroup.Get("/login/google", p.Handle(httpapi.Route{
			Controller: cfg.Auth.GoogleLogin,
		}))
		authGroup.Get("/login/google/redirect", p.Handle(httpapi.Route{
			Query:      dto.GoogleCodeQuery,
			Controller: cfg.Auth.GoogleLoginRedirect,
		}))
	}

	movies := app.Group("/movies")
	movies.Get("/", p.Handle(httpapi.Route{
		Query:      dto.PaginationQuery,
		Controller: cfg.Movies.Movies,
	}))
	movies.Get("/histories", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Query:      dto.PaginationQuery,
		Controller: cfg.Movies.Histories,
	}))
	movies.Get("/likes", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Query:      dto.PaginationQuery,
		Controller: cfg.Movies.Likes,
	}))
	movies.Get("/favorites", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Query:      dto.PaginationQuery,
		Controller: cfg.Movies.Favorites,
	}))
	movies.Get("/:movieId/detail", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthOptional,
		Params:     dto.MovieIDParams,
		Controller: cfg.Movies.Detail,
	}))
	movies.Post("/:movieId/like", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Params:     dto.MovieIDParams,
		Body:       dto.ToggleLikeBody,
		Controller: cfg.Movies.ToggleLike,
	}))
	movies.Post("/:movieId/favorite", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Params:     dto.MovieIDParams,
		Body:       dto.ToggleFavoriteBody,
		Controller: cfg.Movies.ToggleFavorite,
	}))
	movies.Delete("/:movieId/favorite", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Params:     dto.MovieIDParams,
		Controller: cfg.Movies.DeleteFavorite,
	}))
	movies.Delete("/:movieId/histories", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Params:     dto.MovieIDParams,
		Controller: cfg.Movies.DeleteHistory,
	}))
	movies.Get("/:movieId/reviews", p.Handle(httpapi.Route{
		Params:     dto.MovieIDParams,
		Query:      dto.PaginationQuery,
		Controller: cfg.Reviews.ByMovie,
	}))
	movies.Post("/:movieId/reviews", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Params:     dto.MovieIDParams,
		Body:       dto.CreateReviewBody,
		Controller: cfg.Reviews.Write,
	}))

	reviews := app.Group("/reviews")
	reviews.Get("/:reviewId", p.Handle(httpapi.Route{
		Params:     dto.ReviewIDParams,
		Controller: cfg.Reviews.Detail,
	}))
	reviews.Patch("/:reviewId", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Params:     dto.ReviewIDParams,
		Body:       dto.EditReviewBody,
		Controller: cfg.Reviews.Edit,
	}))
	reviews.Delete("/:reviewId", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Params:     dto.ReviewIDParams,
		Controller: cfg.Reviews.Remove,
	}))

	users := app.Group("/users")
	users.Get("/me", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Controller: cfg.Users.Me,
	}))
	users.Get("/me/reviews", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Query:      dto.PaginationQuery,
		Controller: cfg.Reviews.Mine,
	}))
	users.Patch("/me/name", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Body:       dto.UpdateNameBody,
		Controller: cfg.Users.UpdateMyName,
	}))
	users.Patch("/me/password", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Body:       dto.UpdatePasswordBody,
		Controller: cfg.Users.UpdateMyPassword,
	}))
	users.Delete("/me", p.Handle(httpapi.Route{
		Auth:       httpapi.AuthMust,
		Body:       dto.WithdrawBody,
		Controller: cfg.Users.Withdraw,
	}))
	users.Get("/:userId", p.Handle(httpapi.Route{
		Params:     dto.UserIDParams,
		Controller: cfg.Users.User,
	}))
}
