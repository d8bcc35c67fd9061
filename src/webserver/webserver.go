// Package webserver contains the HTTP control surface of artframe. It exposes
// the control operations as a small JSON API, serves the control UI and
// streams the changes of the display over a websocket.
package webserver

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/ironsmile/wrapfs"

	"github.com/ironsmile/artframe/src/config"
	"github.com/ironsmile/artframe/src/control"
)

// Server represents the control web server.
type Server struct {
	cfg      config.Config
	ctrl     control.Controller
	events   EventSource
	httpRoot fs.FS

	// startTime is used as the modification time of the embedded files.
	startTime time.Time

	mu       sync.Mutex
	listener net.Listener
}

// NewServer returns a new Server using the supplied configuration cfg. The
// static control UI is served from httpRoot. events may be nil in which case
// the events endpoint is not available.
func NewServer(
	cfg config.Config,
	ctrl control.Controller,
	events EventSource,
	httpRoot fs.FS,
) *Server {
	return &Server{
		cfg:       cfg,
		ctrl:      ctrl,
		events:    events,
		httpRoot:  httpRoot,
		startTime: time.Now(),
	}
}

// Handler returns the root http.Handler of the server with all the routes
// attached.
func (srv *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)

	routes := map[string]http.Handler{
		EndpointUpdate:         NewUpdateHandler(srv.ctrl),
		EndpointPause:          NewDisplayHandler(srv.ctrl.Pause, "Display paused"),
		EndpointResume:         NewDisplayHandler(srv.ctrl.Resume, "Display resumed"),
		EndpointStop:           NewDisplayHandler(srv.ctrl.Stop, "Display stopped"),
		EndpointCurrent:        NewCurrentHandler(srv.ctrl),
		EndpointStatus:         NewStatusHandler(srv.ctrl),
		EndpointCacheStats:     NewCacheStatsHandler(srv.ctrl),
		EndpointCache:          NewCacheListHandler(srv.ctrl),
		EndpointCacheClear:     NewCacheClearHandler(srv.ctrl),
		EndpointCurrentArtwork: NewCurrentArtworkHandler(srv.ctrl),
		EndpointQR:             NewQRHandler(srv.cfg.Publish.ControlURL),
		EndpointEvents:         NewEventsHandler(srv.events),
		EndpointAbout:          NewAboutHandler(srv.cfg),
	}

	for path, handler := range routes {
		router.Handle(path, handler).Methods(EndpointMethods[path]...)
	}

	if srv.httpRoot != nil {
		staticFS := wrapfs.WithModTime(srv.httpRoot, srv.startTime)
		router.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS))).Methods(
			http.MethodGet, http.MethodHead,
		)
	}

	var handler http.Handler = router

	if srv.cfg.Gzip {
		handler = NewGzipHandler(handler, []string{
			EndpointEvents,
			EndpointCurrentArtwork,
			EndpointQR,
		})
	}

	return handler
}

// Serve listens on the configured address and serves requests until ctx is
// done. Then the server is shut down gracefully.
func (srv *Server) Serve(ctx context.Context) error {
	lsn, err := net.Listen("tcp", srv.cfg.Listen)
	if err != nil {
		return err
	}

	return srv.serveListener(ctx, lsn)
}

// Addr returns the address the server listens on. It is nil before Serve.
func (srv *Server) Addr() net.Addr {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.listener == nil {
		return nil
	}
	return srv.listener.Addr()
}

func (srv *Server) serveListener(ctx context.Context, lsn net.Listener) error {
	srv.mu.Lock()
	srv.listener = lsn
	srv.mu.Unlock()

	httpSrv := &http.Server{
		Handler:        srv.Handler(),
		ReadTimeout:    time.Duration(srv.cfg.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(srv.cfg.WriteTimeout) * time.Second,
		MaxHeaderBytes: srv.cfg.MaxHeadersSize,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Webserver shutdown: %s\n", err)
		}
	}()

	log.Printf("Webserver started on %s.\n", lsn.Addr())
	err := httpSrv.Serve(lsn)
	if errors.Is(err, http.ErrServerClosed) {
		<-shutdownDone
		err = nil
	}
	log.Println("Webserver stopped.")

	return err
}
