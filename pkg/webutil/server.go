package webutil

import (
	"context"
	"net"
	"net/http"
	"time"

	chitrace "github.com/DataDog/dd-trace-go/contrib/go-chi/chi.v5/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/ratebound/ratebound-go-sdk/pkg/cmdutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/logutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/runutil"
	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"
)

// ListenAndServeWithContext does the same as http.ListenAndServe with the
// difference that is properly utilises the context. This means it does a
// graceful shutdown when the context is done and a context cancellation gets
// propagated down to the actual request context.
func ListenAndServeWithContext(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			ctx := logutil.Start(ctx, "request")
			return ctx
		},
	}

	grp, ctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		err := server.ListenAndServe()
		if err == http.ErrServerClosed {
			// We do not want to print an error on graceful shutdown.
			return nil
		}

		return errors.WithStack(err)
	})

	grp.Go(func() error {
		<-ctx.Done()

		logutil.Get(ctx).Warn("Got shutdown signal")
		time.Sleep(3 * time.Second) // Give systems some time to populate shutdown.

		logutil.Get(ctx).Debug("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return errors.WithStack(server.Shutdown(shutdownCtx))
	})

	return errors.Wrap(grp.Wait(), "http server failed")
}

// ListenAddress is the address the Server listens on. It is a separate type
// to support dependency injection.
type ListenAddress string

// Server is a web server for services that embed their own HTTP API. It
// supports dependency injection using dig.
type Server struct {
	Address  ListenAddress
	Handlers []Handler
}

// ServerParams defines all parameters that are needed for the Server. Its
// fields can be injected using dig.
type ServerParams struct {
	dig.In

	Address  ListenAddress
	Handlers []Handler `group:"handler"`
}

// Handler is the interface that HTTP handlers need to implement to get picked
// up and served by the Server.
type Handler interface {
	Register(chi.Router)
}

// Helper to provide a handler to dependency injection.
func ProvideHandler(c *dig.Container, fn any) error {
	return c.Provide(fn, dig.Group("handler"), dig.As(new(Handler)))
}

func NewServer(p ServerParams) *Server {
	return &Server{
		Address:  p.Address,
		Handlers: p.Handlers,
	}
}

// Workers defines the workers, making it compatible with runutil.
func (s *Server) Workers() []runutil.Worker {
	return []runutil.Worker{s}
}

func (s *Server) Run(ctx context.Context) error {
	// Delay the context cancel by 5s to give Kubernetes some time to redirect
	// traffic to another pod.
	ctx = cmdutil.ContextWithDelay(ctx, 5*time.Second)

	router := chi.NewRouter()
	router.Use(middleware.Compress(7))
	router.Use(chitrace.Middleware())

	for _, h := range s.Handlers {
		h.Register(router)
	}

	logutil.Get(ctx).Info("http server listening", "address", string(s.Address))
	return errors.WithStack(ListenAndServeWithContext(
		ctx, string(s.Address), router))
}
