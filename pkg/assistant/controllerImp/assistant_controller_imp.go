package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"kisan/pkg/ai"
	"kisan/pkg/apperr"
	"kisan/pkg/validate"
)

type chatRequest struct {
	Message string        `json:"message" validate:"required,max=2000"`
	History []ai.ChatTurn `json:"history" validate:"max=20,dive"`
}

// AssistantCtrl proxies the client chatbot so provider keys stay on the server.
type AssistantCtrl struct{ advisor ai.Advisor }

func New(advisor ai.Advisor) *AssistantCtrl { return &AssistantCtrl{advisor} }

func (h *AssistantCtrl) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("bad json")
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := validate.Struct(req); err != nil {
		return err
	}
	reply, err := h.advisor.Chat(c.Request().Context(), req.History, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "reply": reply})
}
