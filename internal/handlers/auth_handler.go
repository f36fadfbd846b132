package handlers

import (
	"log"

	"heirloom/internal/middleware"
	"heirloom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthHandler handles the cover gate and the per-user auth forms.
type AuthHandler struct {
	authService *services.AuthService
	store       *session.Store
	validate    *validator.Validate
	familyCode  string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, store *session.Store, familyCode string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
		validate:    validator.New(),
		familyCode:  familyCode,
	}
}

// RegisterRoutes registers the public routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
	router.Get("/cover", h.HandleCover)
	router.Post("/unlock", h.HandleUnlock)
	router.Get("/login", h.HandleLoginForm)
	router.Post("/login", h.HandleLogin)
	router.Get("/register", h.HandleRegisterForm)
	router.Post("/register", h.HandleRegister)
}

// RegisterProtectedRoutes registers the routes that sit behind the session
// guard.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/logout", h.HandleLogout)
}

// HandleHome redirects the root path to the cover page.
func (h *AuthHandler) HandleHome(c *fiber.Ctx) error {
	return c.Redirect("/cover", fiber.StatusFound)
}

// HandleCover renders the cover page with the unlock form.
func (h *AuthHandler) HandleCover(c *fiber.Ctx) error {
	return c.Render("cover", fiber.Map{})
}

// HandleUnlock checks the submitted code against the family code. Any number
// of retries is allowed; a mismatch just lands back on the cover with the
// flag untouched.
func (h *AuthHandler) HandleUnlock(c *fiber.Ctx) error {
	if c.FormValue("code") != h.familyCode {
		return c.Redirect("/cover", fiber.StatusFound)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Failed to load session during unlock: %v", err)
		return c.Redirect("/cover", fiber.StatusFound)
	}
	sess.Set(middleware.SessionKeyCoverUnlocked, true)
	if err := sess.Save(); err != nil {
		log.Printf("Failed to save session during unlock: %v", err)
		return c.Redirect("/cover", fiber.StatusFound)
	}

	return c.Redirect("/login", fiber.StatusFound)
}

// coverUnlocked reports whether the session has passed the cover gate.
func (h *AuthHandler) coverUnlocked(c *fiber.Ctx) bool {
	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Failed to load session: %v", err)
		return false
	}
	unlocked, ok := sess.Get(middleware.SessionKeyCoverUnlocked).(bool)
	return ok && unlocked
}

// HandleLoginForm renders the login form, provided the cover gate has been
// passed.
func (h *AuthHandler) HandleLoginForm(c *fiber.Ctx) error {
	if !h.coverUnlocked(c) {
		return c.Redirect("/cover", fiber.StatusFound)
	}
	return c.Render("login", fiber.Map{})
}

// CredentialsForm represents the login and registration form fields.
type CredentialsForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// HandleLogin authenticates a user and establishes the session identity.
// Bad credentials silently re-render the form with no error message.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	if !h.coverUnlocked(c) {
		return c.Redirect("/cover", fiber.StatusFound)
	}

	var form CredentialsForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing login form: %v", err)
		return c.Render("login", fiber.Map{})
	}
	if err := h.validate.Struct(form); err != nil {
		return c.Render("login", fiber.Map{})
	}

	user, err := h.authService.LoginUser(form.Username, form.Password)
	if err != nil {
		log.Printf("Login failed for user %s: %v", form.Username, err)
		return c.Render("login", fiber.Map{})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Failed to load session during login: %v", err)
		return c.Render("login", fiber.Map{})
	}
	sess.Set(middleware.SessionKeyUserID, user.ID)
	sess.Set(middleware.SessionKeyUsername, user.Username)
	if err := sess.Save(); err != nil {
		log.Printf("Failed to save session during login: %v", err)
		return c.Render("login", fiber.Map{})
	}

	return c.Redirect("/diary", fiber.StatusFound)
}

// HandleRegisterForm renders the registration form.
func (h *AuthHandler) HandleRegisterForm(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{})
}

// HandleRegister creates a new account. A duplicate username (or invalid
// form) redirects silently back to the form; success lands on the login
// page.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var form CredentialsForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing register form: %v", err)
		return c.Redirect("/register", fiber.StatusFound)
	}
	if err := h.validate.Struct(form); err != nil {
		return c.Redirect("/register", fiber.StatusFound)
	}

	outcome, err := h.authService.RegisterUser(form.Username, form.Password)
	if err != nil {
		log.Printf("Error registering user %s: %v", form.Username, err)
		return c.Redirect("/register", fiber.StatusFound)
	}
	if outcome == services.RegisterConflict {
		log.Printf("Registration rejected, username %s already taken", form.Username)
		return c.Redirect("/register", fiber.StatusFound)
	}

	return c.Redirect("/login", fiber.StatusFound)
}

// HandleLogout destroys the session, clearing both the authenticated
// identity and the cover-unlocked flag. The next visit starts again at the
// cover gate.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Failed to load session during logout: %v", err)
		return c.Redirect("/cover", fiber.StatusFound)
	}
	if err := sess.Destroy(); err != nil {
		log.Printf("Failed to destroy session during logout: %v", err)
	}
	return c.Redirect("/cover", fiber.StatusFound)
}
