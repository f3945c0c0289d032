package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/realtime-ai/textseg/pkg/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Frame operations
const (
	OpSentences = "sentences"
	OpTokenize  = "tokenize"
)

// wsRequest is one WebSocket text frame. Each frame carries a whole text;
// frames are independent of each other.
type wsRequest struct {
	ID             string  `json:"id,omitempty"`
	Op             string  `json:"op,omitempty"` // defaults to sentences
	Text           *string `json:"text"`
	KeepWhitespace *bool   `json:"keep_whitespace,omitempty"`
	NormalizeASCII *bool   `json:"normalize_ascii,omitempty"`
}

type wsSentencesReply struct {
	ID        string     `json:"id,omitempty"`
	Op        string     `json:"op"`
	Sentences [][]string `json:"sentences"`
}

type wsTokensReply struct {
	ID     string   `json:"id,omitempty"`
	Op     string   `json:"op"`
	Tokens []string `json:"tokens"`
}

type wsErrorReply struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

var errTextRequired = errors.New("text is required")

// handleWebSocket handles GET /v1/ws.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		return
	}

	sessionID := uuid.NewString()
	s.registerSession(sessionID, conn)
	s.logger.Info("websocket session opened",
		zap.String("session_id", sessionID),
		zap.String("request_id", RequestID(r.Context())),
		zap.String("remote", getClientIP(r)),
	)

	defer func() {
		conn.Close()
		s.unregisterSession(sessionID)
		s.logger.Info("websocket session closed", zap.String("session_id", sessionID))
	}()

	conn.SetReadLimit(s.config.MaxTextBytes)
	s.handleSession(sessionID, conn)
}

// handleSession reads frames until the peer goes away or the server stops.
func (s *Server) handleSession(sessionID string, conn *websocket.Conn) {
	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error",
					zap.String("session_id", sessionID),
					zap.Error(err),
				)
			}
			return
		}

		var reply any
		if msgType != websocket.TextMessage {
			reply = wsErrorReply{Error: "only text frames are accepted"}
		} else {
			reply = s.handleFrame(s.ctx, sessionID, data)
		}

		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Warn("websocket write error",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			return
		}
	}
}

// handleFrame segments the text carried by one frame and builds the reply.
func (s *Server) handleFrame(ctx context.Context, sessionID string, data []byte) any {
	var req wsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wsErrorReply{Error: "invalid frame: " + err.Error()}
	}

	var reply any
	err := trace.WithSpan(ctx, "ws.frame", func(ctx context.Context) error {
		reject := func(err error) error {
			s.logger.Debug(trace.LogWithTrace(ctx, "websocket frame rejected"),
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			return err
		}
		if req.Text == nil {
			return reject(errTextRequired)
		}
		cfg := s.resolve(req.KeepWhitespace, req.NormalizeASCII)

		switch req.Op {
		case "", OpSentences:
			sentences := trace.SentenceTokenize(ctx, *req.Text, cfg.KeepWhitespace, cfg.NormalizeASCII)
			s.metrics.observeSentences(sentences)
			reply = wsSentencesReply{ID: req.ID, Op: OpSentences, Sentences: sentences}
		case OpTokenize:
			tokens := trace.Tokenize(ctx, *req.Text, cfg.NormalizeASCII)
			s.metrics.observeTokens(len(tokens))
			reply = wsTokensReply{ID: req.ID, Op: OpTokenize, Tokens: tokens}
		default:
			return reject(errors.New("unknown op: " + req.Op))
		}
		return nil
	}, oteltrace.WithAttributes(trace.SessionAttrs(sessionID)...))

	if err != nil {
		return wsErrorReply{ID: req.ID, Error: err.Error()}
	}
	return reply
}

func getClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
