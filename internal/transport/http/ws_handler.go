package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/app"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/quiz"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Index *int `json:"index"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades HTTP requests to websockets and drives one quiz session
// per connection:
//
//	-> select {index}   <- question
//	-> next             <- question | result
//	-> retry            <- question (wrong questions of the last result)
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	chapter := r.URL.Query().Get("chapter")
	if chapter == "" {
		http.Error(w, "missing chapter", http.StatusBadRequest)
		return
	}
	ids := quiz.ParseIDs(r.URL.Query().Get("ids"))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	c := &wsConn{conn: conn}

	view, err := h.service.Start(ctx, chapter, ids)
	if err != nil {
		c.send("error", toErrorPayload(err))
		return
	}
	sessionID := view.SessionID
	defer func() {
		if sessionID != "" {
			h.service.Abandon(context.Background(), sessionID)
		}
	}()
	if !c.send("question", view) {
		return
	}

	var last *app.Submission
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Index == nil {
				c.send("error", errorPayload{Code: "invalid_payload", Message: "invalid select payload"})
				continue
			}
			view, err := h.service.Select(ctx, sessionID, *payload.Index)
			if err != nil {
				c.send("error", toErrorPayload(err))
				continue
			}
			c.send("question", view)
		case "next":
			step, err := h.service.Next(ctx, sessionID)
			if err != nil {
				c.send("error", toErrorPayload(err))
				continue
			}
			if step.Submission != nil {
				sessionID = ""
				last = step.Submission
				c.send("result", step.Submission)
				continue
			}
			c.send("question", step.View)
		case "retry":
			if last == nil || !last.CanRetry {
				c.send("error", errorPayload{Code: "empty_selection", Message: "nothing to retry"})
				continue
			}
			if sessionID != "" {
				h.service.Abandon(ctx, sessionID)
			}
			view, err := h.service.Start(ctx, last.Result.Chapter, quiz.ParseIDs(last.RetryIDs))
			if err != nil {
				sessionID = ""
				c.send("error", toErrorPayload(err))
				continue
			}
			sessionID = view.SessionID
			c.send("question", view)
		default:
			c.send("error", errorPayload{Code: "unsupported", Message: "unsupported message type"})
		}
	}
}

type wsConn struct {
	conn *websocket.Conn
}

func (c *wsConn) send(typ string, payload any) bool {
	if err := c.conn.WriteJSON(outboundMessage[any]{Type: typ, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
		return false
	}
	return true
}
