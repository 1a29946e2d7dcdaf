package chat

import (
	"context"
	"os"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/ElBenerDev/asistenteAltamirano/internal/listing"
)

// Sender delivers one message on a session. *Client implements it.
type Sender interface {
	Send(ctx context.Context, sess Session, text string) (*Reply, Session, error)
}

// Conversation drives an interactive chat. It owns the current session and
// allows a single outstanding request: a submit made while another is in
// flight is rejected with ErrBusy instead of racing it.
type Conversation struct {
	sender    Sender
	extractor *listing.Extractor
	logger    *logrus.Logger

	inflight *semaphore.Weighted
	busy     atomic.Bool

	mu      sync.Mutex
	session Session
}

// NewConversation creates a conversation with an empty session.
func NewConversation(sender Sender, extractor *listing.Extractor, logger *logrus.Logger) *Conversation {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if extractor == nil {
		extractor = listing.NewExtractor(listing.DefaultBaseOrigin, logger)
	}

	return &Conversation{
		sender:    sender,
		extractor: extractor,
		logger:    logger,
		inflight:  semaphore.NewWeighted(1),
	}
}

// Session returns the session the next submit will use.
func (c *Conversation) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Reset drops the current thread so the next submit starts a new one.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = Session{}
}

// Busy reports whether a request is in flight. Front ends disable their
// input while it is true.
func (c *Conversation) Busy() bool {
	return c.busy.Load()
}

// Submit sends text and returns the finished turn. Failures come back as
// error turns; the conversation is ready for the next submit on every path.
func (c *Conversation) Submit(ctx context.Context, text string) Turn {
	if !c.inflight.TryAcquire(1) {
		c.logger.Warn("Rejected message while another is in flight")
		return ErrorTurn("", &Error{Kind: ErrBusy, Message: ErrBusy.Error()})
	}
	c.busy.Store(true)
	defer func() {
		c.busy.Store(false)
		c.inflight.Release(1)
	}()

	sess := c.Session()

	reply, next, err := c.sender.Send(ctx, sess, text)
	if err != nil {
		c.logger.WithError(err).WithField("thread_id", sess.ThreadID).Error("Chat turn failed")
		turn := ErrorTurn("", err)
		turn.Session = sess
		return turn
	}

	c.mu.Lock()
	c.session = next
	c.mu.Unlock()

	turn := Route(reply, c.extractor)
	turn.Session = next

	c.logger.WithFields(logrus.Fields{
		"request_id": turn.ID,
		"thread_id":  next.ThreadID,
		"kind":       turn.Kind.String(),
		"listings":   len(turn.Listings),
	}).Info("Chat turn completed")

	return turn
}
