package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kisan/pkg/apperr"
	"kisan/pkg/chat/service"
	"kisan/pkg/logger"
	"kisan/pkg/middleware"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type ChatCtrl struct {
	svc      service.ChatService
	upgrader websocket.Upgrader
}

// New allows websocket upgrades from the given origins; "*" allows any.
func New(svc service.ChatService, origins []string) *ChatCtrl {
	allowed := map[string]bool{}
	for _, o := range origins {
		allowed[o] = true
	}
	return &ChatCtrl{
		svc: svc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, map[string]any{"success": true, "data": data})
}

func (h *ChatCtrl) Users(c echo.Context) error {
	out, err := h.svc.Users(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, out)
}

func (h *ChatCtrl) Messages(c echo.Context) error {
	out, err := h.svc.Thread(c.Request().Context(), middleware.UserID(c), c.Param("userId"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, out)
}

func (h *ChatCtrl) Send(c echo.Context) error {
	var in service.SendInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("bad json")
	}
	m, err := h.svc.Send(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, m)
}

func (h *ChatCtrl) Status(c echo.Context) error {
	var body struct {
		IsOnline *bool `json:"isOnline"`
	}
	if err := c.Bind(&body); err != nil || body.IsOnline == nil {
		return apperr.Validation("isOnline is required")
	}
	if err := h.svc.SetStatus(c.Request().Context(), middleware.UserID(c), *body.IsOnline); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Status updated successfully"})
}

func (h *ChatCtrl) Conversations(c echo.Context) error {
	out, err := h.svc.Conversations(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, out)
}

func (h *ChatCtrl) UnreadCount(c echo.Context) error {
	n, err := h.svc.Unread(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, n)
}

// Stream upgrades to a websocket and pushes hub events until either side
// goes away. Inbound frames are only read to notice the close.
func (h *ChatCtrl) Stream(c echo.Context) error {
	uid := middleware.UserID(c)
	// subscribe before the handshake completes so nothing sent after the
	// client sees 101 is missed
	sub, err := h.svc.Connect(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	defer h.svc.Disconnect(context.Background(), uid, sub)

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already answered the client
		logger.L().Info("websocket upgrade failed", zap.String("uid", uid), zap.Error(err))
		return nil
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(pongWait)) })
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-done:
			return nil
		case ev, open := <-sub.C:
			if !open {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return nil
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		}
	}
}
