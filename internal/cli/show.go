package cli

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/figure"
	"github.com/matzehuels/plotgrid/pkg/pipeline"
)

// showCommand creates the show command, which serves a live preview.
func (c *CLI) showCommand() *cobra.Command {
	var (
		size sizeFlags
		addr string
	)

	cmd := &cobra.Command{
		Use:   "show <figure.yaml>",
		Short: "Serve a live preview of a figure",
		Long: `Show starts a local web server that renders the figure on every page load,
so edits to the figure file or the files it references appear on refresh.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			// Fail fast on a broken figure file before binding the port.
			if _, err := figure.Load(args[0]); err != nil {
				return err
			}
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := &http.Server{
				Handler:           newPreviewServer(runner, args[0], size, logger).routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}

			printSuccess("Previewing %s", StyleHighlight.Render(args[0]))
			printDetail("Open %s", StyleLink.Render("http://"+ln.Addr().String()))
			printDetail("Press Ctrl+C to stop")

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Serve(ln) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	size.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8765", "listen address")

	return cmd
}

// =============================================================================
// Preview Server
// =============================================================================

type previewServer struct {
	runner *pipeline.Runner
	path   string
	size   sizeFlags
	logger *log.Logger
}

func newPreviewServer(runner *pipeline.Runner, path string, size sizeFlags, logger *log.Logger) *previewServer {
	return &previewServer{runner: runner, path: path, size: size, logger: logger}
}

func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/figure.svg", s.handleFigure)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

type requestIDKey struct{}

// requestID tags every request with a random ID, echoed in X-Request-ID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *previewServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"id", requestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// render loads the figure from disk and renders it as SVG.
func (s *previewServer) render(ctx context.Context) (*figure.Figure, *pipeline.Result, error) {
	fig, err := figure.Load(s.path)
	if err != nil {
		return nil, nil, err
	}
	width, height, dpi, err := s.size.resolve(fig)
	if err != nil {
		return nil, nil, err
	}
	res, err := s.runner.Show(ctx, fig.Root, pipeline.ShowOptions{Width: width, Height: height, DPI: dpi})
	if err != nil {
		return nil, nil, err
	}
	return fig, res, nil
}

func (s *previewServer) handleFigure(w http.ResponseWriter, r *http.Request) {
	fig, res, err := s.render(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	// Stable per figure content, so browsers can revalidate cheaply.
	etag := `"` + uuid.NewSHA1(uuid.NameSpaceURL, []byte(fig.Root.Fingerprint()+fmt.Sprint(res.Size))).String() + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", etag)
	_, _ = w.Write(res.Data)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>{{.Path}} · plotgrid</title>
<style>
body { margin: 0; background: #f4f4f4; font-family: sans-serif; }
header { padding: 8px 16px; color: #555; font-size: 13px; }
main { display: flex; justify-content: center; padding: 16px; }
img { background: white; box-shadow: 0 1px 4px rgba(0,0,0,.2); max-width: 100%; }
.error { color: #b33; white-space: pre-wrap; font-family: monospace; }
</style></head>
<body><header>{{.Path}}{{if .Stats}} · {{.Stats}}{{end}}</header>
<main>{{if .Error}}<p class="error">{{.Error}}</p>{{else}}<img src="/figure.svg" alt="{{.Path}}">{{end}}</main>
</body></html>
`))

func (s *previewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Path  string
		Stats string
		Error string
	}{Path: s.path}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, res, err := s.render(r.Context()); err != nil {
		data.Error = errors.UserMessage(err)
		w.WriteHeader(statusFor(err))
	} else {
		data.Stats = fmt.Sprintf("%.2f × %.2f in, %s", res.Size.W, res.Size.H, plural(res.Stats.Leaves, "leaf panel"))
	}
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("render index", "err", err)
	}
}

func (s *previewServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn("preview failed", "id", requestIDFrom(r.Context()), "err", err)
	http.Error(w, errors.UserMessage(err), statusFor(err))
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRenderFailed, errors.ErrCodeInternal, "":
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}
