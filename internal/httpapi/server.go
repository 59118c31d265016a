// Package httpapi serves the task-list component as an HTML page.
package httpapi

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tidwall/sjson"

	"tasklist/internal/observability"
	"tasklist/internal/output"
	"tasklist/internal/tasklist"
)

const (
	requestIDHeader = "X-Request-ID"
	wsWriteTimeout  = 5 * time.Second
)

// Server renders the state of one mounted component on every request.
// It never triggers a fetch itself.
type Server struct {
	component *tasklist.Component
	metrics   *observability.Metrics
	debug     *log.Logger
	upgrader  websocket.Upgrader
}

// New creates a Server. debug may be nil.
func New(component *tasklist.Component, metrics *observability.Metrics, debug *log.Logger) *Server {
	if debug == nil {
		debug = log.New(io.Discard, "", 0)
	}
	return &Server{
		component: component,
		metrics:   metrics,
		debug:     debug,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Only same-origin pages (or non-browser clients) may subscribe.
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)

	r.Get("/", s.handlePage)
	r.Get("/fragment", s.handleFragment)
	r.Get("/tasks", s.handleTasks)
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", s.metrics.Handler())

	return r
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		s.debug.Printf("%s %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	state := s.component.State()
	s.metrics.ObserveRequest("page", state.Phase())

	var buf bytes.Buffer
	if err := output.RenderHTML(&buf, state); err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	state := s.component.State()
	s.metrics.ObserveRequest("fragment", state.Phase())

	var buf bytes.Buffer
	if err := output.RenderFragment(&buf, state); err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	state := s.component.State()
	s.metrics.ObserveRequest("tasks", state.Phase())

	data, err := output.StateJSON(state)
	if err != nil {
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleWS sends one message holding the rendered fragment once the fetch
// has finished, then closes the connection.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-s.component.Done():
	case <-gone:
		return
	case <-r.Context().Done():
		return
	}

	state := s.component.State()
	s.metrics.ObserveRequest("ws", state.Phase())

	msg, err := wsMessage(state)
	if err != nil {
		s.debug.Printf("ws encode: %v", err)
		return
	}
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		s.debug.Printf("ws write: %v", err)
		return
	}
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(wsWriteTimeout))
}

func wsMessage(state tasklist.State) ([]byte, error) {
	var frag bytes.Buffer
	if err := output.RenderFragment(&frag, state); err != nil {
		return nil, err
	}
	msg, err := sjson.SetBytes([]byte(`{}`), "phase", state.Phase().String())
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(msg, "html", frag.String())
}
