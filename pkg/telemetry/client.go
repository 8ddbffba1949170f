package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Options configures a Client
type Options struct {
	BaseURL       string
	Timeout       time.Duration // Per request
	QueueSize     int
	LocateTimeout time.Duration
}

type job struct {
	path string
	body any
}

// Client posts session telemetry in the background. Nothing it does blocks the caller.
// A nil *Client is valid and drops everything.
type Client struct {
	baseURL       string
	http          *http.Client
	log           *zap.SugaredLogger
	locateTimeout time.Duration

	mu     sync.Mutex
	closed bool
	queue  chan job

	sender   sync.WaitGroup
	locators sync.WaitGroup

	sent    atomic.Int64
	failed  atomic.Int64
	dropped atomic.Int64
}

// NewClient creates a client and starts its sender goroutine
func NewClient(opts Options, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 16
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.LocateTimeout <= 0 {
		opts.LocateTimeout = opts.Timeout
	}

	c := &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		http:          &http.Client{Timeout: opts.Timeout},
		log:           log,
		locateTimeout: opts.LocateTimeout,
		queue:         make(chan job, opts.QueueSize),
	}
	c.sender.Add(1)
	go c.run()
	return c
}

func (c *Client) run() {
	defer c.sender.Done()
	for j := range c.queue {
		if err := c.post(j.path, j.body); err != nil {
			c.failed.Add(1)
			c.log.Warnw("Telemetry post failed", "path", j.path, "error", err)
			continue
		}
		c.sent.Add(1)
	}
}

func (c *Client) post(path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post %s: unexpected status %s", path, resp.Status)
	}
	return nil
}

// Enqueue schedules a JSON POST. It reports false if the queue is full or closed.
func (c *Client) Enqueue(path string, body any) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		c.dropped.Add(1)
		return false
	}
	select {
	case c.queue <- job{path: path, body: body}:
		return true
	default:
		c.dropped.Add(1)
		c.log.Debugw("Telemetry queue full, dropping", "path", path)
		return false
	}
}

// LogSession enqueues a session report
func (c *Client) LogSession(r SessionReport) bool {
	return c.Enqueue(LogPath, r)
}

// LogLocation enqueues a location report
func (c *Client) LogLocation(l Location) bool {
	return c.Enqueue(LocationPath, l)
}

// StartSession reports the session and, when a locator is given, looks up
// and reports the location on a separate goroutine. It returns immediately.
func (c *Client) StartSession(ctx context.Context, r SessionReport, loc Locator) {
	if c == nil {
		return
	}
	c.LogSession(r)
	if loc == nil {
		return
	}

	c.locators.Add(1)
	go func() {
		defer c.locators.Done()
		ctx, cancel := context.WithTimeout(ctx, c.locateTimeout)
		defer cancel()

		fix, err := loc.Locate(ctx)
		if err != nil {
			c.log.Debugw("Location not reported", "error", err)
			return
		}
		c.LogLocation(fix)
	}()
}

// Close waits for pending lookups, drains the queue and stops the sender
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.locators.Wait()

	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.queue)
	}
	c.mu.Unlock()

	c.sender.Wait()
}

// Stats returns the number of sent, failed and dropped reports
func (c *Client) Stats() (sent, failed, dropped int64) {
	if c == nil {
		return 0, 0, 0
	}
	return c.sent.Load(), c.failed.Load(), c.dropped.Load()
}
