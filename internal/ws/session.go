package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/windoze95/recipefinder/internal/finder"
	"github.com/windoze95/recipefinder/internal/logger"
	"github.com/windoze95/recipefinder/internal/metrics"
	"github.com/windoze95/recipefinder/internal/models"
	"github.com/windoze95/recipefinder/internal/service"
	"go.uber.org/zap"
)

// LiveSearchHandler serves GET /api/live. Each connection owns one search
// controller wired directly to the proxy service, so the browser only
// streams keystrokes and clicks and renders the state it is sent.
type LiveSearchHandler struct {
	Service  *service.RecipeService
	Metrics  *metrics.Metrics
	Debounce time.Duration
	upgrader websocket.Upgrader
}

// NewLiveSearchHandler creates a handler. Browser origins are accepted when
// they match the request host, one of allowedOrigins, or localhost.
func NewLiveSearchHandler(svc *service.RecipeService, m *metrics.Metrics, debounce time.Duration, allowedOrigins []string) *LiveSearchHandler {
	return &LiveSearchHandler{
		Service:  svc,
		Metrics:  m,
		Debounce: debounce,
		upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if origin == o {
				return true
			}
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if u.Host == r.Host {
			return true
		}
		// Allow localhost for development
		return u.Hostname() == "localhost"
	}
}

// HandleLiveSearch upgrades the request and runs the session until the
// peer disconnects.
func (h *LiveSearchHandler) HandleLiveSearch(c *gin.Context) {
	log := logger.FromContext(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(conn, uuid.New().String())
	ctrl := finder.NewController(serviceBackend{svc: h.Service}, finder.Options{Debounce: h.Debounce})
	sess := newSession(client, ctrl)

	if h.Metrics != nil {
		h.Metrics.SessionOpened()
	}
	log.Info("live search session started", zap.String("session_id", client.SessionID))

	client.Send <- encode(MsgTypeConnected, ConnectedPayload{SessionID: client.SessionID})

	go client.WritePump()
	go sess.forwardState()
	go func() {
		client.ReadPump(sess.handleMessage)
		sess.close()
		if h.Metrics != nil {
			h.Metrics.SessionClosed()
		}
		log.Info("live search session ended", zap.String("session_id", client.SessionID))
	}()
}

// session ties one connection to one controller.
type session struct {
	client    *Client
	ctrl      *finder.Controller
	done      chan struct{}
	forwarded chan struct{}
}

func newSession(client *Client, ctrl *finder.Controller) *session {
	return &session{
		client:    client,
		ctrl:      ctrl,
		done:      make(chan struct{}),
		forwarded: make(chan struct{}),
	}
}

// forwardState pushes a state message after every controller change,
// starting with the initial state.
func (s *session) forwardState() {
	defer close(s.forwarded)

	if !s.send(encode(MsgTypeState, newStatePayload(s.ctrl.State()))) {
		return
	}
	for range s.ctrl.Changes() {
		if !s.send(encode(MsgTypeState, newStatePayload(s.ctrl.State()))) {
			return
		}
	}
}

// send queues msg unless the session is shutting down.
func (s *session) send(msg []byte) bool {
	select {
	case s.client.Send <- msg:
		return true
	case <-s.done:
		return false
	}
}

// close stops the controller and, once nothing else can write, closes the
// outbound queue so WritePump sends a close frame and exits.
func (s *session) close() {
	close(s.done)
	s.ctrl.Close()
	<-s.forwarded
	close(s.client.Send)
}

// handleMessage parses an incoming message and routes it to the controller.
func (s *session) handleMessage(client *Client, data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError("invalid message format")
		return
	}

	logger.Get().Debug("received ws message",
		zap.String("type", msg.Type),
		zap.String("session_id", client.SessionID),
	)

	switch msg.Type {
	case MsgTypeQuery:
		var p QueryPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendError("invalid query payload")
			return
		}
		s.ctrl.SetQuery(p.Q)

	case MsgTypeSelect:
		var p SelectPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.ID < 0 {
			s.sendError(models.ErrMsgInvalidID)
			return
		}
		s.ctrl.Select(p.ID)

	case MsgTypeBack:
		s.ctrl.Back()

	default:
		s.sendError("unknown message type: " + msg.Type)
	}
}

func (s *session) sendError(message string) {
	s.send(encode(MsgTypeError, ErrorPayload{Message: message}))
}

// serviceBackend adapts the proxy service to finder.Backend.
type serviceBackend struct {
	svc *service.RecipeService
}

func (b serviceBackend) Search(ctx context.Context, query string) ([]models.RecipeSummary, error) {
	return b.svc.SearchSummaries(ctx, query)
}

func (b serviceBackend) Details(ctx context.Context, id int) (*models.RecipeDetail, error) {
	if id < 0 {
		return nil, fmt.Errorf("invalid recipe ID %d", id)
	}
	return b.svc.RecipeDetail(ctx, uint64(id))
}
