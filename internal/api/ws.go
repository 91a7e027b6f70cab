package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/sprite-ai/mergemate/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev; restrict in production
	},
}

// WebSocket message types from client.
const (
	wsMsgReview = "review"
	wsMsgFile   = "file"
)

// WebSocket message types to client.
const (
	wsMsgProgress = "progress"
	wsMsgResult   = "result"
	wsMsgContent  = "content"
	wsMsgError    = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsProgress reports one pipeline stage while a review runs.
type wsProgress struct {
	Stage  string `json:"stage"`
	Detail string `json:"detail,omitempty"`
}

// wsError carries the failure message plus the status the HTTP API would
// have returned.
type wsError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug().Err(err).Msg("websocket read")
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendWSError(conn, http.StatusBadRequest, "invalid message format")
			continue
		}

		switch msg.Type {
		case wsMsgReview:
			s.handleWSReview(r.Context(), conn, msg.Data)
		case wsMsgFile:
			s.handleWSFile(r.Context(), conn, msg.Data)
		default:
			s.sendWSError(conn, http.StatusBadRequest, "unknown message type: "+msg.Type)
		}
	}
}

func (s *Server) handleWSReview(ctx context.Context, conn *websocket.Conn, data json.RawMessage) {
	var req model.ReviewRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWSError(conn, http.StatusBadRequest, "invalid review data")
		return
	}

	// The engine calls progress inline, so writes stay serialized on this
	// connection.
	progress := func(stage, detail string) {
		s.sendWSMessage(conn, wsMsgProgress, wsProgress{Stage: stage, Detail: detail})
	}

	result, err := s.engine.Review(ctx, req, progress)
	if err != nil {
		s.sendWSError(conn, statusFor(err), err.Error())
		return
	}

	s.sendWSMessage(conn, wsMsgResult, result)
}

func (s *Server) handleWSFile(ctx context.Context, conn *websocket.Conn, data json.RawMessage) {
	var req model.FileRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWSError(conn, http.StatusBadRequest, "invalid file data")
		return
	}

	content, err := s.engine.FetchFile(ctx, req)
	if err != nil {
		s.sendWSError(conn, statusFor(err), err.Error())
		return
	}

	s.sendWSMessage(conn, wsMsgContent, content)
}

func (s *Server) sendWSMessage(conn *websocket.Conn, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		s.log.Error().Err(err).Msg("ws marshal")
		return
	}
	msg := wsMessage{Type: msgType, Data: raw}
	if err := conn.WriteJSON(msg); err != nil {
		s.log.Error().Err(err).Msg("ws write")
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, status int, msg string) {
	s.sendWSMessage(conn, wsMsgError, wsError{Message: msg, Status: status})
}
