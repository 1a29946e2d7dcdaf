package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ElBenerDev/asistenteAltamirano/internal/models"
)

// RequestIDHeader correlates a chat request with the gateway and backend logs.
const RequestIDHeader = "X-Request-ID"

const maxReplySize = 4 << 20

type requestIDKey struct{}

// WithRequestID returns a context whose chat requests are sent with id
// instead of a freshly generated one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// Reply is a successful answer from the chat endpoint.
type Reply struct {
	RequestID string
	Status    string
	Text      string
	ThreadID  string
	IsHTML    bool
}

// IsRich reports whether the reply should go through listing extraction
// rather than be shown as plain text.
func (r *Reply) IsRich() bool {
	return r.IsHTML || strings.Contains(r.Text, "**")
}

// Client posts user messages to the assistant's chat endpoint.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *logrus.Logger
}

// NewClient creates a client for endpoint. A zero timeout leaves requests
// bounded only by the context passed to Send.
func NewClient(endpoint string, timeout time.Duration, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Client{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Send posts text on the thread held by sess. On success it returns the
// reply together with the session to use for the next turn. Empty input
// fails with ErrEmptyInput without touching the network.
func (c *Client) Send(ctx context.Context, sess Session, text string) (*Reply, Session, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return nil, sess, &Error{Kind: ErrEmptyInput, Message: "El mensaje no puede estar vacío"}
	}

	payload, err := json.Marshal(models.ChatRequest{
		Content:  message,
		ThreadID: sess.threadIDRef(),
	})
	if err != nil {
		return nil, sess, &Error{Kind: ErrTransport, Message: "failed to encode chat request", Err: err}
	}

	requestID := requestIDFrom(ctx)
	logger := c.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"thread_id":  sess.ThreadID,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, sess, &Error{Kind: ErrTransport, Message: "failed to create chat request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.WithError(err).Error("Chat request failed")
		return nil, sess, &Error{
			Kind:    ErrTransport,
			Message: fmt.Sprintf("failed to send chat request: %v", err),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		logger.WithError(err).Error("Failed to read chat reply")
		return nil, sess, &Error{
			Kind:       ErrTransport,
			Message:    fmt.Sprintf("failed to read chat reply: %v", err),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	var data models.ChatResponse
	decodeErr := json.Unmarshal(body, &data)

	logger = logger.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// The backend reports its own failures as {status: "error"} with a 500.
		if decodeErr == nil && data.Status == "error" && data.Error != "" {
			logger.WithField("error", data.Error).Warn("Chat endpoint reported an error")
			return nil, sess, &Error{Kind: ErrServer, Message: data.Error, StatusCode: resp.StatusCode}
		}

		message := data.Detail
		if message == "" {
			message = fmt.Sprintf("Error en el servidor (status %d)", resp.StatusCode)
		}
		logger.WithField("detail", data.Detail).Error("Chat endpoint returned an error status")
		return nil, sess, &Error{Kind: ErrTransport, Message: message, StatusCode: resp.StatusCode}
	}

	if decodeErr != nil {
		logger.WithError(decodeErr).Error("Failed to decode chat reply")
		return nil, sess, &Error{
			Kind:       ErrMalformedReply,
			Message:    "failed to decode chat reply",
			StatusCode: resp.StatusCode,
			Err:        decodeErr,
		}
	}

	if data.Status != models.StatusSuccess {
		message := data.Error
		if message == "" {
			message = "Error en la comunicación"
		}
		logger.WithField("error", data.Error).Warn("Chat endpoint reported an error")
		return nil, sess, &Error{Kind: ErrServer, Message: message, StatusCode: resp.StatusCode}
	}

	if strings.TrimSpace(data.Response) == "" {
		logger.Warn("Chat reply has no response content")
		return nil, sess, &Error{Kind: ErrMalformedReply, Message: "No response content", StatusCode: resp.StatusCode}
	}

	reply := &Reply{
		RequestID: requestID,
		Status:    data.Status,
		Text:      data.Response,
		ThreadID:  data.ThreadID,
		IsHTML:    data.IsHTML,
	}
	next := sess.With(data.ThreadID)

	logger.WithFields(logrus.Fields{
		"next_thread_id": next.ThreadID,
		"is_html":        reply.IsHTML,
		"is_rich":        reply.IsRich(),
	}).Info("Received chat reply")

	return reply, next, nil
}
