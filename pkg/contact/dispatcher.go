package contact

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithQueueSize sets how many payloads may wait for delivery.
func WithQueueSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.size = n
		}
	}
}

// WithDeliveryTimeout bounds each delivery attempt.
func WithDeliveryTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithDispatcherLogger attaches a logger for delivery outcomes.
func WithDispatcherLogger(logger *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithDeliveryHook registers a callback invoked after every attempt.
func WithDeliveryHook(fn func(FormValues, error)) DispatcherOption {
	return func(d *Dispatcher) {
		d.hook = fn
	}
}

type delivery struct {
	ctx    context.Context
	values FormValues
}

// Dispatcher makes a Channel fire-and-forget: Deliver enqueues and returns
// immediately, a single worker performs the hand-off. There are no retries.
type Dispatcher struct {
	channel Channel
	size    int
	timeout time.Duration
	logger  *zap.Logger
	hook    func(FormValues, error)

	queue chan delivery
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// NewDispatcher starts the worker goroutine. Call Close to stop it.
func NewDispatcher(channel Channel, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		channel: channel,
		size:    64,
		timeout: 15 * time.Second,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(d)
	}
	if d.channel == nil {
		d.channel = DiscardChannel{}
	}
	d.queue = make(chan delivery, d.size)
	d.done = make(chan struct{})
	go d.run()
	return d
}

var _ Channel = (*Dispatcher)(nil)

// Deliver enqueues values. It never blocks; a full queue drops the payload
// and returns ErrQueueFull.
func (d *Dispatcher) Deliver(ctx context.Context, values FormValues) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case d.queue <- delivery{ctx: context.WithoutCancel(ctx), values: values}:
		return nil
	default:
		d.logger.Warn("contact delivery dropped", zap.Error(ErrQueueFull))
		return ErrQueueFull
	}
}

// Close stops accepting payloads, lets the worker drain what is queued and
// waits for it to exit or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for job := range d.queue {
		d.deliver(job)
	}
}

func (d *Dispatcher) deliver(job delivery) {
	ctx, cancel := context.WithTimeout(job.ctx, d.timeout)
	defer cancel()

	err := d.channel.Deliver(ctx, job.values)
	if err != nil {
		d.logger.Warn("contact delivery failed", zap.Error(err))
	} else {
		d.logger.Debug("contact delivery sent")
	}
	if d.hook != nil {
		d.hook(job.values, err)
	}
}
