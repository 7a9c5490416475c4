package auth

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/config"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/models"
)

const sessionCookie = "session_token"

// SessionClaims is the signed session payload. Exactly one of the two
// shapes is ever present: a student identity or the admin flag.
type SessionClaims struct {
	Role        models.Role       `json:"role"`
	StudentID   int64             `json:"student_id,omitempty"`
	StudentName string            `json:"student_name,omitempty"`
	ClassGroup  models.ClassGroup `json:"class_group,omitempty"`
	jwt.RegisteredClaims
}

func signingKey() []byte {
	return []byte(config.AppConfig.SecretKey)
}

func newClaims(role models.Role) SessionClaims {
	return SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "madrasa-platform",
		},
	}
}

// BeginStudentSession replaces whatever session existed with a student
// one.
func BeginStudentSession(c *fiber.Ctx, student *models.Student) error {
	claims := newClaims(models.RoleStudent)
	claims.StudentID = student.ID
	claims.StudentName = student.Name
	claims.ClassGroup = student.ClassGroup
	return setSessionCookie(c, claims)
}

// BeginAdminSession replaces whatever session existed with an admin one.
func BeginAdminSession(c *fiber.Ctx) error {
	return setSessionCookie(c, newClaims(models.RoleAdmin))
}

// EndSession drops the session cookie unconditionally.
func EndSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func setSessionCookie(c *fiber.Ctx, claims SessionClaims) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signingKey())
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    signed,
		Path:     "/",
		Expires:  claims.ExpiresAt.Time,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func parseSession(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return signingKey(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// CheckAdminCode compares a submitted passphrase against the configured
// secret in constant time.
func CheckAdminCode(code string) bool {
	return subtle.ConstantTimeCompare([]byte(code), []byte(config.AppConfig.AdminCode)) == 1
}

// SessionMiddleware resolves the session cookie into typed locals. Every
// downstream handler reads the caller's role and identity from the
// request context, never from any global.
func SessionMiddleware(c *fiber.Ctx) error {
	c.Locals("role", models.RoleAnonymous)

	tokenString := c.Cookies(sessionCookie)
	if tokenString == "" {
		return c.Next()
	}
	claims, err := parseSession(tokenString)
	if err != nil {
		// Expired or tampered cookie: treat the caller as anonymous.
		return c.Next()
	}

	switch claims.Role {
	case models.RoleStudent:
		c.Locals("role", models.RoleStudent)
		c.Locals("student", &models.Student{
			ID:         claims.StudentID,
			Name:       claims.StudentName,
			ClassGroup: claims.ClassGroup,
		})
	case models.RoleAdmin:
		c.Locals("role", models.RoleAdmin)
	}
	return c.Next()
}

// CurrentRole returns the caller role resolved by SessionMiddleware.
func CurrentRole(c *fiber.Ctx) models.Role {
	if role, ok := c.Locals("role").(models.Role); ok {
		return role
	}
	return models.RoleAnonymous
}

// CurrentStudent returns the student identity, nil unless the caller is
// a logged-in student.
func CurrentStudent(c *fiber.Ctx) *models.Student {
	if s, ok := c.Locals("student").(*models.Student); ok {
		return s
	}
	return nil
}

// RequireStudent redirects anyone but a logged-in student to the entry
// page.
func RequireStudent(c *fiber.Ctx) error {
	if CurrentRole(c) != models.RoleStudent {
		return c.Redirect("/")
	}
	return c.Next()
}

// RequireAdmin redirects anyone but the admin to the admin login form.
func RequireAdmin(c *fiber.Ctx) error {
	if CurrentRole(c) != models.RoleAdmin {
		return c.Redirect("/admin")
	}
	return c.Next()
}
