package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/services"
	"storefront/pkg/upload"
)

// Response messages shared with the frontend.
const (
	msgRegistered         = "User registered successfully!"
	msgImageRequired      = "Image is required."
	msgEmailTaken         = "Email is already in use."
	msgRegisterFailed     = "An internal server error occurred."
	msgLoginOK            = "Login successful"
	msgInvalidCredentials = "Invalid credentials"
	msgLoginFailed        = "Internal server error"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService *services.AuthService
	uploads     *upload.Store
	metrics     *metrics.Metrics
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, uploads *upload.Store, m *metrics.Metrics, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		uploads:     uploads,
		metrics:     m,
		log:         log,
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
}

// HandleRegister handles a multipart registration with fields email and
// password and an image file. The uploaded file is removed from disk before
// the handler returns, whatever the outcome.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	log := h.log.WithField("request_id", middleware.RequestID(c))

	var reg services.Registration
	var fh *multipart.FileHeader

	// Fields come from the multipart body only, never the query string. A
	// body that is not multipart leaves everything empty and the service
	// reports the missing image.
	if form, err := c.MultipartForm(); err == nil {
		reg.Email = firstValue(form.Value["email"])
		reg.Password = firstValue(form.Value["password"])
		// an empty file part counts as no image
		if files := form.File["image"]; len(files) > 0 && files[0].Size > 0 {
			fh = files[0]
		}
	}

	if fh != nil {
		file, err := h.uploads.Save(fh)
		if err != nil {
			if errors.Is(err, upload.ErrTooLarge) {
				h.metrics.Registrations.WithLabelValues("too_large").Inc()
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": fmt.Sprintf("Image must not exceed %d MB.", h.uploads.MaxSize()>>20),
				})
			}
			log.WithError(err).Error("failed to store uploaded image")
			h.metrics.Registrations.WithLabelValues("error").Inc()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgRegisterFailed})
		}
		defer func() {
			if err := file.Remove(); err != nil {
				log.WithError(err).Warn("failed to remove uploaded image")
			}
		}()
		reg.Image = file
	}

	user, err := h.authService.RegisterUser(c.UserContext(), reg)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrImageRequired):
			h.metrics.Registrations.WithLabelValues("missing_image").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgImageRequired})
		case errors.As(err, &verr):
			h.metrics.Registrations.WithLabelValues("invalid").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": verr.Messages})
		case errors.Is(err, services.ErrEmailTaken):
			h.metrics.Registrations.WithLabelValues("duplicate").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgEmailTaken})
		default:
			log.WithError(err).Error("failed to register user")
			h.metrics.Registrations.WithLabelValues("error").Inc()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgRegisterFailed})
		}
	}

	h.metrics.Registrations.WithLabelValues("created").Inc()
	log.WithField("user_id", user.ID).Info("user registered")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": msgRegistered,
		"user": fiber.Map{
			"email": user.Email,
		},
	})
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin checks credentials. No token or session is issued.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	log := h.log.WithField("request_id", middleware.RequestID(c))

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		// an unreadable body carries no credentials, so it cannot match anyone
		log.WithError(err).Debug("failed to parse login body")
	}

	if err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.metrics.Logins.WithLabelValues("invalid").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": msgInvalidCredentials,
			})
		}
		log.WithError(err).Error("login failed")
		h.metrics.Logins.WithLabelValues("error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": msgLoginFailed,
		})
	}

	h.metrics.Logins.WithLabelValues("ok").Inc()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msgLoginOK,
	})
}
