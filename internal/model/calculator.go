package model

import (
	"strconv"

	"go.uber.org/zap"
)

// DefaultStorageKey is the key the margin is persisted under.
const DefaultStorageKey = "margin"

// Storage is the key-value capability the calculator persists its margin
// through. Implementations decide the medium.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// View is the read-only state handed to the presentation layer.
type View struct {
	Cost   CostText
	Margin int
	Price  string
}

// Calculator owns the cost being typed and the selected gross margin and
// derives the selling price from them.
type Calculator struct {
	cost   CostText
	margin int

	storage Storage
	key     string
	policy  RestorePolicy
	logger  *zap.Logger

	listeners []func(View)
}

// CalculatorOption configures a Calculator.
type CalculatorOption func(*Calculator)

// WithStorage persists the margin to s under key. An empty key uses DefaultStorageKey.
func WithStorage(s Storage, key string) CalculatorOption {
	return func(c *Calculator) {
		c.storage = s
		if key != "" {
			c.key = key
		}
	}
}

// WithRestorePolicy sets how an out-of-range persisted margin is treated.
func WithRestorePolicy(p RestorePolicy) CalculatorOption {
	return func(c *Calculator) {
		c.policy = p
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *zap.Logger) CalculatorOption {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCalculator returns a calculator with an empty cost and the default margin.
func NewCalculator(opts ...CalculatorOption) *Calculator {
	c := &Calculator{
		margin: DefaultMargin,
		key:    DefaultStorageKey,
		policy: RestoreFallback,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers fn to receive the view after every accepted mutation.
func (c *Calculator) OnChange(fn func(View)) {
	c.listeners = append(c.listeners, fn)
}

// Cost returns the current cost text.
func (c *Calculator) Cost() CostText { return c.cost }

// Margin returns the current margin.
func (c *Calculator) Margin() int { return c.margin }

// SellingPrice returns the formatted selling price.
func (c *Calculator) SellingPrice() string {
	return SellingPrice(c.cost, c.margin)
}

// View returns a snapshot of the current state.
func (c *Calculator) View() View {
	return View{Cost: c.cost, Margin: c.margin, Price: c.SellingPrice()}
}

// AppendDigit types r onto the cost. It reports whether the text changed.
func (c *Calculator) AppendDigit(r rune) bool {
	next := c.cost.Append(r)
	if next == c.cost {
		return false
	}
	c.cost = next
	c.notify()
	return true
}

// Reset clears the cost.
func (c *Calculator) Reset() {
	if c.cost == "" {
		return
	}
	c.cost = ""
	c.notify()
}

// SetMargin selects margin v. Values outside [MinMargin, MaxMargin] are
// ignored. Every accepted value is written to storage.
func (c *Calculator) SetMargin(v int) bool {
	if !ValidMargin(v) {
		c.logger.Debug("margin rejected", zap.Int("margin", v))
		return false
	}
	changed := v != c.margin
	c.margin = v
	c.persist()
	if changed {
		c.notify()
	}
	return true
}

// Load replaces both cost and margin, as when restoring an undo snapshot.
// An invalid margin keeps the current one.
func (c *Calculator) Load(cost CostText, margin int) {
	changed := cost != c.cost
	c.cost = cost
	if ValidMargin(margin) {
		changed = changed || margin != c.margin
		c.margin = margin
		c.persist()
	}
	if changed {
		c.notify()
	}
}

// Restore reads the persisted margin once. A missing, unparsable or
// rejected value leaves the default in place and writes nothing.
func (c *Calculator) Restore() {
	if c.storage == nil {
		return
	}
	raw, ok := c.storage.Get(c.key)
	if !ok {
		c.logger.Debug("no persisted margin", zap.String("key", c.key))
		return
	}
	v, accepted := ParseMargin(raw, c.policy)
	if !accepted {
		c.logger.Info("persisted margin discarded",
			zap.String("key", c.key),
			zap.String("value", raw),
			zap.Int("default", DefaultMargin))
		return
	}
	c.logger.Debug("margin restored", zap.Int("margin", v))
	if v != c.margin {
		c.margin = v
		c.notify()
	}
}

func (c *Calculator) persist() {
	if c.storage == nil {
		return
	}
	if err := c.storage.Set(c.key, strconv.Itoa(c.margin)); err != nil {
		c.logger.Warn("failed to persist margin", zap.Int("margin", c.margin), zap.Error(err))
	}
}

func (c *Calculator) notify() {
	v := c.View()
	for _, fn := range c.listeners {
		fn(v)
	}
}
