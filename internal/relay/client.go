package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zhaomaota/word-stone/internal/domain"
)

// InboundHandler receives every valid event read from the relay
type InboundHandler func(ctx context.Context, ev Inbound)

// JoinFunc supplies the join announcement sent on every (re)connect
type JoinFunc func() Join

// StateFunc is told when the connection goes up or down
type StateFunc func(connected bool)

// Client is the relay connection owned by one session
type Client interface {
	Start(ctx context.Context)
	Stop()
	Connected() bool
	Send(ctx context.Context, ev Outbound) error
}

// Config configures a WSClient
type Config struct {
	URL      string
	Username string
	Handler  InboundHandler
	Join     JoinFunc
	OnState  StateFunc
}

// WSClient manages a WebSocket connection to the relay with auto-reconnect
type WSClient struct {
	cfg      Config
	log      *slog.Logger
	conn     *websocket.Conn
	mu       sync.RWMutex
	writeMu  sync.Mutex
	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	connected bool
	dormant   bool

	// wakeup triggers reconnection from dormant mode
	wakeup chan struct{}

	// backoff bounds, shortened in tests
	initialDelay time.Duration
	maxDelay     time.Duration
}

// NewWSClient creates a relay client. Call Start to connect.
func NewWSClient(cfg Config) *WSClient {
	return &WSClient{
		cfg:          cfg,
		log:          slog.Default().With("username", cfg.Username, "component", "relay"),
		shutdown:     make(chan struct{}),
		wakeup:       make(chan struct{}, 1),
		initialDelay: DefaultReconnectDelay,
		maxDelay:     MaxReconnectDelay,
	}
}

// Start begins the connection loop
func (c *WSClient) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.connectLoop(ctx)
}

// Stop closes the connection and waits for the loop to exit
func (c *WSClient) Stop() {
	c.stopOnce.Do(func() {
		close(c.shutdown)

		c.mu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.mu.Unlock()

		c.wg.Wait()
		c.setConnected(false)
	})
}

// Connected reports whether the relay is reachable right now
func (c *WSClient) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Send writes one outbound event
func (c *WSClient) Send(ctx context.Context, ev Outbound) error {
	c.mu.RLock()
	isDormant := c.dormant
	conn := c.conn
	connected := c.connected
	c.mu.RUnlock()

	if isDormant {
		c.log.Debug(LogMsgDormantRetry)
		select {
		case c.wakeup <- struct{}{}:
		default:
		}
		return fmt.Errorf("%w: reconnection triggered", domain.ErrRelayOffline)
	}
	if !connected || conn == nil {
		return domain.ErrRelayOffline
	}

	payload, err := Encode(ev)
	if err != nil {
		return err
	}

	c.log.Debug(LogMsgSendingEvent, "event", ev.EventName())
	if err := c.write(ctx, conn, payload); err != nil {
		c.log.Warn(LogMsgSendFailed, "event", ev.EventName(), "error", err)
		return fmt.Errorf("%w: %w", domain.ErrRemoteCallFailed, err)
	}
	return nil
}

func (c *WSClient) write(ctx context.Context, conn *websocket.Conn, payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(WriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *WSClient) connectLoop(ctx context.Context) {
	defer c.wg.Done()

	backoff := c.initialDelay
	consecutiveFailures := 0

	for {
		select {
		case <-c.shutdown:
			c.log.Info(LogMsgClientStopped)
			return
		case <-ctx.Done():
			c.log.Info(LogMsgClientStopped)
			return
		default:
		}

		connectedOnce, err := c.connect(ctx)
		c.setConnected(false)

		if connectedOnce {
			if consecutiveFailures > 0 {
				c.log.Info(LogMsgRestored, "after_failures", consecutiveFailures)
			}
			backoff = c.initialDelay
			consecutiveFailures = 0
		} else {
			consecutiveFailures++
			if consecutiveFailures >= MaxConsecutiveFailures {
				if stop := c.handleDormantMode(ctx, &consecutiveFailures, &backoff); stop {
					return
				}
				continue
			}
			if consecutiveFailures <= 3 || consecutiveFailures%100 == 0 {
				c.log.Warn(LogMsgReconnecting,
					"error", err,
					"backoff", backoff,
					"consecutive_failures", consecutiveFailures)
			}
		}

		select {
		case <-time.After(backoff):
			backoff = time.Duration(float64(backoff) * ReconnectMultiplier)
			if backoff > c.maxDelay {
				backoff = c.maxDelay
			}
		case <-c.shutdown:
			return
		case <-ctx.Done():
			return
		}
	}
}

// handleDormantMode waits for a Send to request a reconnect. It reports true when the client should stop.
func (c *WSClient) handleDormantMode(ctx context.Context, consecutiveFailures *int, backoff *time.Duration) bool {
	c.mu.Lock()
	c.dormant = true
	c.mu.Unlock()

	c.log.Warn(LogMsgGivingUp,
		"consecutive_failures", *consecutiveFailures,
		"max_allowed", MaxConsecutiveFailures)

	select {
	case <-c.wakeup:
		c.log.Info(LogMsgWaking)
		c.mu.Lock()
		c.dormant = false
		c.mu.Unlock()
		*backoff = c.initialDelay
		*consecutiveFailures = 0
		return false
	case <-c.shutdown:
		return true
	case <-ctx.Done():
		return true
	}
}

// connect dials, announces the user, then reads until the connection drops.
// It reports whether the dial succeeded.
func (c *WSClient) connect(ctx context.Context) (bool, error) {
	c.log.Info(LogMsgConnecting, "url", c.cfg.URL)

	dialer := websocket.Dialer{
		ReadBufferSize:   ReadBufferSize,
		WriteBufferSize:  WriteBufferSize,
		HandshakeTimeout: WriteTimeout,
	}

	conn, resp, err := dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		if resp != nil {
			return false, fmt.Errorf("failed to connect: %w (status: %s, code: %d)", err, resp.Status, resp.StatusCode)
		}
		return false, fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	c.mu.Lock()
	select {
	case <-c.shutdown:
		c.mu.Unlock()
		return true, nil
	default:
	}
	c.conn = conn
	c.mu.Unlock()

	if c.cfg.Join != nil {
		payload, err := Encode(c.cfg.Join())
		if err == nil {
			err = c.write(ctx, conn, payload)
		}
		if err != nil {
			c.log.Warn(LogMsgJoinFailed, "error", err)
			return true, err
		}
	}

	c.setConnected(true)
	c.log.Info(LogMsgConnected, "url", c.cfg.URL)

	return true, c.readLoop(ctx, conn)
}

func (c *WSClient) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		select {
		case <-c.shutdown:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			select {
			case <-c.shutdown:
				return nil
			default:
			}
			c.log.Warn(LogMsgReadError, "error", err)
			return err
		}

		ev, err := Decode(msg)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidEvent) {
				c.log.Warn(LogMsgInvalidEvent, "error", err)
			}
			continue
		}
		if c.cfg.Handler != nil {
			c.cfg.Handler(ctx, ev)
		}
	}
}

func (c *WSClient) setConnected(connected bool) {
	c.mu.Lock()
	changed := c.connected != connected
	c.connected = connected
	if !connected {
		c.conn = nil
	}
	c.mu.Unlock()

	if changed && c.cfg.OnState != nil {
		c.cfg.OnState(connected)
	}
}
