package shell

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"alfredoptarigan/cv-warehouse/internal/console"
)

//go:embed templates/page.html
var pageFS embed.FS

// Server hosts one console per browser session behind a fiber app.
type Server struct {
	app      *fiber.App
	sessions *sessionStore
	layout   console.Layout
	page     *template.Template
	log      *zap.SugaredLogger
}

type Options struct {
	Factory   Factory
	Layout    console.Layout
	BodyLimit int
	AccessLog bool
	AppName   string
	// SessionIdle closes consoles not used for this long. Negative keeps
	// them until shutdown.
	SessionIdle time.Duration
	// MaxSessions caps live consoles. Negative removes the cap.
	MaxSessions int
	Clock       clock.PassiveClock
}

func New(opts Options) (*Server, error) {
	if opts.Factory == nil {
		return nil, fmt.Errorf("shell: console factory is required")
	}
	if opts.Layout == nil {
		opts.Layout = console.DefaultLayout()
	}
	if opts.AppName == "" {
		opts.AppName = "CV Warehouse Console"
	}
	if opts.SessionIdle == 0 {
		opts.SessionIdle = DefaultSessionIdle
	}
	if opts.MaxSessions == 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}

	page, err := template.ParseFS(pageFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	s := &Server{
		sessions: newSessionStore(opts.Factory, opts.Clock, opts.SessionIdle, opts.MaxSessions),
		layout:   opts.Layout,
		page:     page,
		log:      zap.S().Named("shell"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:      opts.AppName,
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: s.handleError,
	})
	s.app.Use(recover.New())
	if opts.AccessLog {
		s.app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}
	s.routes()
	return s, nil
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the HTTP server and every session console.
func (s *Server) Shutdown() error {
	err := s.app.Shutdown()
	s.sessions.closeAll()
	return err
}

func (s *Server) routes() {
	s.app.Get("/", s.handlePage)
	s.app.Get("/surface", s.handleSurface)

	events := s.app.Group("/events")
	events.Post("/file", s.event(s.selectFile))
	events.Post("/drop", s.event(s.selectFile))
	events.Post("/clear", s.event(func(sess *session, _ *fiber.Ctx) error {
		sess.console.Upload.ClearFile()
		return nil
	}))
	events.Post("/analyze", s.event(func(sess *session, _ *fiber.Ctx) error {
		sess.console.Analysis.Analyze()
		return nil
	}))
	events.Post("/tab/:tab", s.event(func(sess *session, ctx *fiber.Ctx) error {
		tab := console.Tab(ctx.Params("tab"))
		if tab != console.TabAnalyze && tab != console.TabWarehouse {
			return fiber.NewError(fiber.StatusNotFound, "unknown tab")
		}
		sess.console.ActivateTab(tab)
		return nil
	}))
	events.Post("/search", s.event(func(sess *session, ctx *fiber.Ctx) error {
		sess.console.Warehouse.SearchInput(ctx.FormValue("text"))
		return nil
	}))
	events.Post("/refresh", s.event(func(sess *session, _ *fiber.Ctx) error {
		sess.console.Warehouse.Refresh()
		return nil
	}))
	events.Post("/detail/:id", s.event(func(sess *session, ctx *fiber.Ctx) error {
		sess.console.Warehouse.ViewDetail(ctx.Params("id"))
		return nil
	}))
	events.Post("/back", s.event(func(sess *session, _ *fiber.Ctx) error {
		sess.console.Warehouse.Back()
		return nil
	}))
	events.Post("/smart", s.event(func(sess *session, ctx *fiber.Ctx) error {
		sess.console.Smart.Run(ctx.FormValue("query"))
		return nil
	}))
	events.Post("/delete/:id", s.event(s.deleteEntry))
}

// session resolves the caller's session from the cookie, starting a new one
// when the cookie is missing or unknown.
func (s *Server) session(ctx *fiber.Ctx) (*session, error) {
	sess, err := s.sessions.get(ctx.Cookies(SessionCookie))
	if err != nil {
		return nil, fmt.Errorf("failed to start console session: %w", err)
	}
	if ctx.Cookies(SessionCookie) != sess.id {
		ctx.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    sess.id,
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
	return sess, nil
}

// event wraps a console action. The response is the surface after the
// action's synchronous part; ?settle=true also waits for its collaborator
// calls to complete.
func (s *Server) event(fn func(sess *session, ctx *fiber.Ctx) error) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sess, err := s.session(ctx)
		if err != nil {
			return err
		}

		sess.events.Lock()
		defer sess.events.Unlock()

		if err := fn(sess, ctx); err != nil {
			return err
		}
		if ctx.QueryBool("settle") {
			sess.console.Settle()
		}
		return ctx.JSON(sess.console.Snapshot())
	}
}

// selectFile serves both the picker and the drop zone. The upload is copied
// into memory since fiber releases the multipart form with the request.
func (s *Server) selectFile(sess *session, ctx *fiber.Ctx) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file field is required")
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read uploaded file: %w", err)
	}

	sess.console.Upload.SelectFile(console.PendingFile{
		Name:      fh.Filename,
		SizeBytes: fh.Size,
		Handle:    console.BytesFile(content),
	})
	return nil
}

// deleteEntry carries the browser's answer to the confirmation prompt in
// the confirm field.
func (s *Server) deleteEntry(sess *session, ctx *fiber.Ctx) error {
	sess.dialogs.setApproval(ctx.FormValue("confirm") == "true")
	defer sess.dialogs.setApproval(false)

	sess.console.Warehouse.DeleteEntry(ctx.Params("id"), ctx.FormValue("name"))
	return nil
}

func (s *Server) handleSurface(ctx *fiber.Ctx) error {
	sess, err := s.session(ctx)
	if err != nil {
		return err
	}
	if ctx.QueryBool("settle") {
		sess.console.Settle()
	}
	return ctx.JSON(sess.console.Snapshot())
}

func (s *Server) handlePage(ctx *fiber.Ctx) error {
	sess, err := s.session(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, pageData{
		layout:   s.layout,
		snapshot: sess.console.Snapshot(),
	}); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	ctx.Type("html", "utf-8")
	return ctx.Send(buf.Bytes())
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Errorw("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{
		"detail": err.Error(),
	})
}
