package contact

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"k8s.io/utils/clock"
)

// SuccessWindow is how long the submitted flag stays raised after a
// successful submission.
const SuccessWindow = 5000 * time.Millisecond

// State is a snapshot of one form instance.
type State struct {
	Values      FormValues  `json:"values"`
	FieldErrors FieldErrors `json:"fieldErrors,omitempty"`
	Submitted   bool        `json:"submitted"`
	Visible     bool        `json:"visible"`
}

// ControllerOption customises a Controller.
type ControllerOption func(*Controller)

// WithClock injects the clock used to schedule the success window reset.
func WithClock(c clock.WithDelayedExecution) ControllerOption {
	return func(ctrl *Controller) {
		if c != nil {
			ctrl.clock = c
		}
	}
}

// WithSuccessWindow overrides SuccessWindow. Non-positive values are ignored.
func WithSuccessWindow(d time.Duration) ControllerOption {
	return func(ctrl *Controller) {
		if d > 0 {
			ctrl.window = d
		}
	}
}

// WithLogger attaches a logger for delivery hand-off failures.
func WithLogger(logger *zap.Logger) ControllerOption {
	return func(ctrl *Controller) {
		if logger != nil {
			ctrl.logger = logger
		}
	}
}

// Controller owns the state of one contact form instance. It is safe for
// concurrent use; reset timers fire on their own goroutines.
type Controller struct {
	mu sync.Mutex

	state     State
	attempted bool
	windowID  uint64
	closed    bool

	channel Channel
	clock   clock.WithDelayedExecution
	window  time.Duration
	logger  *zap.Logger
}

// NewController builds a controller that hands validated payloads to channel.
// A nil channel discards payloads.
func NewController(channel Channel, opts ...ControllerOption) *Controller {
	ctrl := &Controller{
		channel: channel,
		clock:   clock.RealClock{},
		window:  SuccessWindow,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(ctrl)
	}
	if ctrl.channel == nil {
		ctrl.channel = DiscardChannel{}
	}
	return ctrl
}

// Mount records the first display of the form. It returns true only for the
// call that flipped visible; the flag is never reset.
func (c *Controller) Mount() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Visible {
		return false
	}
	c.state.Visible = true
	return true
}

// SetField updates one value. Once a submit has been attempted the whole
// form is re-validated so inline errors track the input.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err := c.state.Values.Set(field, value); err != nil {
		return err
	}
	if c.attempted {
		_, c.state.FieldErrors = Validate(c.state.Values)
	}
	return nil
}

// Submit replaces the current values with values and submits them.
func (c *Controller) Submit(ctx context.Context, values FormValues) (FieldErrors, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	c.state.Values = values
	return c.submitLocked(ctx), nil
}

// SubmitCurrent submits the values accumulated through SetField.
func (c *Controller) SubmitCurrent(ctx context.Context) (FieldErrors, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	return c.submitLocked(ctx), nil
}

func (c *Controller) submitLocked(ctx context.Context) FieldErrors {
	c.attempted = true
	validated, errs := Validate(c.state.Values)
	c.state.FieldErrors = errs
	if !errs.Valid() {
		// A failed pass closes any open success window; its timer becomes stale.
		c.state.Submitted = false
		c.windowID++
		return errs.Clone()
	}

	if err := c.channel.Deliver(ctx, validated); err != nil {
		c.logger.Warn("contact submission hand-off failed", zap.Error(err))
	}

	c.state.Submitted = true
	c.state.Values = FormValues{}
	c.attempted = false

	c.windowID++
	id := c.windowID
	c.clock.AfterFunc(c.window, func() { c.expire(id) })
	return nil
}

// expire lowers the submitted flag if id still names the latest window.
// Timers from earlier windows, or firing after Close, do nothing.
func (c *Controller) expire(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || id != c.windowID {
		return
	}
	c.state.Submitted = false
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.state
	out.FieldErrors = c.state.FieldErrors.Clone()
	return out
}

// Close discards the instance. Pending timers become no-ops and further
// mutations return ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}
