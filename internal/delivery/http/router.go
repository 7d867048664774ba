package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	User      *controllers.UserController
	Event     *controllers.EventController
	Category  *controllers.CategoryController
	RSVP      *controllers.RSVPController
	Dashboard *controllers.DashboardController
	Admin     *controllers.AdminController
}

// NewRouter initializes the HTTP router with all application routes. Role
// checks run before any handler: a request that fails its guard is redirected
// to the no-permission page without touching the handler.
func NewRouter(c Controllers, guard *middleware.Guard) *http.ServeMux {
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /activate", c.Auth.Activate)
	mux.HandleFunc("GET /events", c.Event.Browse)
	mux.HandleFunc("GET /events/{eventID}", c.Event.Get)
	mux.HandleFunc("GET /categories", c.Category.List)
	mux.HandleFunc("GET /categories/{categoryID}", c.Category.Get)
	mux.HandleFunc("GET /no-permission", noPermission)

	// Profile (any signed-in user)
	mux.HandleFunc("GET /me", guard.RequireAuthenticated(c.User.GetProfile))
	mux.HandleFunc("PATCH /me", guard.RequireAuthenticated(c.User.UpdateProfile))
	mux.HandleFunc("POST /me/password", guard.RequireAuthenticated(c.User.ChangePassword))

	// RSVPs and the user dashboard (User role)
	mux.HandleFunc("POST /events/{eventID}/rsvps", guard.Require(domain.Identity.IsUser, c.RSVP.Create))
	mux.HandleFunc("GET /dashboard", guard.Require(domain.Identity.IsUser, c.Dashboard.User))

	// Event and category management (Organizer or Admin)
	organizer := domain.Identity.IsOrganizerOrAdmin
	mux.HandleFunc("POST /events", guard.Require(organizer, c.Event.Create))
	mux.HandleFunc("PATCH /events/{eventID}", guard.Require(organizer, c.Event.Update))
	mux.HandleFunc("DELETE /events/{eventID}", guard.Require(organizer, c.Event.Delete))
	mux.HandleFunc("POST /events/{eventID}/images", guard.Require(organizer, c.Event.UploadImage))
	mux.HandleFunc("POST /categories", guard.Require(organizer, c.Category.Create))
	mux.HandleFunc("PATCH /categories/{categoryID}", guard.Require(organizer, c.Category.Update))
	mux.HandleFunc("DELETE /categories/{categoryID}", guard.Require(organizer, c.Category.Delete))
	mux.HandleFunc("GET /organizer/dashboard", guard.Require(organizer, c.Dashboard.Organizer))

	// Administration (Admin only)
	admin := domain.Identity.IsAdmin
	mux.HandleFunc("GET /admin/dashboard", guard.Require(admin, c.Dashboard.Admin))
	mux.HandleFunc("GET /admin/users", guard.Require(admin, c.Admin.ListUsers))
	mux.HandleFunc("PATCH /admin/users/{userID}", guard.Require(admin, c.Admin.UpdateUser))
	mux.HandleFunc("DELETE /admin/users/{userID}", guard.Require(admin, c.Admin.DeleteUser))
	mux.HandleFunc("POST /admin/groups", guard.Require(admin, c.Admin.CreateGroup))
	mux.HandleFunc("GET /admin/groups", guard.Require(admin, c.Admin.ListGroups))
	mux.HandleFunc("DELETE /admin/groups/{groupID}", guard.Require(admin, c.Admin.DeleteGroup))
	mux.HandleFunc("GET /admin/rsvps", guard.Require(admin, c.RSVP.ListAll))
	mux.HandleFunc("POST /admin/rsvps", guard.Require(admin, c.RSVP.AdminCreate))
	mux.HandleFunc("DELETE /admin/rsvps/{rsvpID}", guard.Require(admin, c.RSVP.Delete))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// noPermission is the landing target for denied requests.
func noPermission(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden,
		"you do not have permission to access this page")
}
