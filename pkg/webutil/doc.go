// Package webutil provides the HTTP plumbing that services embedding the SDK
// share: a context-aware server loop, a dig-wired public server and an admin
// server with the usual operational endpoints.
//
// # HTTP Handlers with webutil
//
// Handlers are structs that register their routes on a chi router. They get
// picked up by the Server via dependency injection:
//
//	type MyHandler struct {
//	    store *SomeStore
//	}
//
//	func NewMyHandler(store *SomeStore) *MyHandler {
//	    return &MyHandler{
//	        store: store,
//	    }
//	}
//
//	func (h *MyHandler) Register(router chi.Router) {
//	    router.Get("/api/resource", h.handleGetResource)
//	}
//
//	func (h *MyHandler) handleGetResource(w http.ResponseWriter, r *http.Request) {
//	    data, err := h.store.Get(r.Context(), "some-id")
//	    if webutil.RespondError(w, err) {
//	        return
//	    }
//
//	    webutil.RespondJSON(w, data)
//	}
//
// Handlers are provided to the dig container with ProvideHandler, so the
// Server collects them as a group:
//
//	webutil.ProvideHandler(c, NewMyHandler)
//	runutil.ProvideWorker(c, webutil.NewServer)
//
// # Admin Server
//
// The AdminServer serves the endpoints that operations need, but that should
// stay off the public listener:
//
//   - /metrics exposes the Prometheus registry.
//   - /health reports 200 until the application context got cancelled.
//   - /-/queues dumps the submit/process/fail counters of all registered
//     queues as JSON.
//   - /debug/pprof/* serves the usual Go profiles.
//
// It implements the runutil worker interfaces, so it can be wired like any
// other background worker:
//
//	runutil.ProvideWorker(c, func() *webutil.AdminServer {
//	    return webutil.NewAdminServer("127.0.0.1:8090")
//	})
//
// # Graceful Shutdown
//
// ListenAndServeWithContext shuts the server down when the context is done.
// It keeps accepting requests for a short drain window first, because load
// balancers usually need a moment to notice that the backend is going away.
// The Server additionally delays the shutdown signal with
// cmdutil.ContextWithDelay for the same reason.
package webutil
