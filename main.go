package main

import (
	"strconv"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/config"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/database"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/logging"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/metrics"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/routes/assessments"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/routes/auth"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/routes/dashboard"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/routes/files"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/routes/students"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/storage"
)

// securityHeaders is attached to every response: no sniffing, no
// framing, no referrer leakage, and only same-origin scripts/styles
// (inline styles allowed for the bundled stylesheet).
var securityHeaders = helmet.Config{
	XFrameOptions:         "DENY",
	ReferrerPolicy:        "no-referrer",
	ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline';",
}

// customErrorHandler renders the shared error template for web errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	switch code {
	case fiber.StatusNotFound:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "غير موجود",
			"ErrorCode":    "404",
			"ErrorMessage": "الصفحة أو الملف المطلوب غير موجود.",
		})
	case fiber.StatusForbidden:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "غير مسموح",
			"ErrorCode":    "403",
			"ErrorMessage": "لا تملك صلاحية الوصول إلى هذا المورد.",
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "خطأ",
			"ErrorCode":    strconv.Itoa(code),
			"ErrorMessage": "وقع خطأ غير متوقع، حاول مرة أخرى.",
		})
	}
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	closeLog, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer closeLog()

	if err := config.InitDB(cfg); err != nil {
		logging.L.Fatalw("database init failed", "err", err)
	}
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		logging.L.Fatalw("migrations failed", "err", err)
	}

	blobs, err := storage.New(cfg.UploadDir)
	if err != nil {
		logging.L.Fatalw("upload dir init failed", "err", err)
	}

	engine := html.New("./app/templates", ".html")

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	app.Use(fiberlogger.New())
	app.Use(cors.New())
	app.Use(helmet.New(securityHeaders))
	app.Use(auth.SessionMiddleware)

	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	students.SetupStudentsRoutes(app)
	assessments.SetupAssessmentsRoutes(app)
	files.SetupFilesRoutes(app, blobs)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	logging.L.Infow("listening", "addr", cfg.Listen)
	if err := app.Listen(cfg.Listen); err != nil {
		logging.L.Fatalw("server stopped", "err", err)
	}
}
