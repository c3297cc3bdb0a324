package webutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ratebound/ratebound-go-sdk/pkg/logutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/queueutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/runutil"
)

// AdminServer serves the operational endpoints that should not be exposed on
// the public listener: Prometheus metrics, the health probe, pprof and queue
// statistics.
type AdminServer struct {
	Address string
}

func NewAdminServer(address string) *AdminServer {
	return &AdminServer{
		Address: address,
	}
}

// Workers defines the workers, making it compatible with runutil.
func (s *AdminServer) Workers() []runutil.Worker {
	return []runutil.Worker{s}
}

func (s *AdminServer) Run(ctx context.Context) error {
	ctx = logutil.Start(ctx, "admin-api")

	logutil.Get(ctx).Debug("admin api listening", "address", s.Address)
	return ListenAndServeWithContext(ctx, s.Address, s.mux(ctx))
}

func (s *AdminServer) mux(ctx context.Context) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if ctx.Err() != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintln(w, "SHUTTING DOWN")
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})

	mux.HandleFunc("/-/queues", func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, queueutil.Snapshots())
	})

	// Copied from init in https://golang.org/src/net/http/pprof/pprof.go,
	// because the package does not allow specifying a mux.
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}
