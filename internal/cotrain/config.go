package cotrain

import (
	"errors"
	"fmt"

	"github.com/drakos74/multiview/internal/math/ml"
)

const (
	// DefaultThreshold is the number of evaluations without improvement a view tolerates.
	DefaultThreshold = 20
	// DefaultMaxIterations caps the loop independently of the stall rule.
	DefaultMaxIterations = 10000
)

var (
	ErrInvalidK         = errors.New("number of clusters cannot be less than 1")
	ErrInvalidThreshold = errors.New("stall threshold cannot be negative")
	ErrInvalidView      = errors.New("unknown view")
)

// View identifies one of the two representations of the items.
type View int

const (
	View1 View = iota + 1
	View2
)

func (v View) index() int {
	return int(v) - 1
}

// Other returns the opposite view.
func (v View) Other() View {
	if v == View1 {
		return View2
	}
	return View1
}

func (v View) String() string {
	switch v {
	case View1:
		return "view1"
	case View2:
		return "view2"
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// Config holds the parameters of the co-training loop.
type Config struct {
	K             int   `json:"k"`
	StartView     View  `json:"start_view"`
	Threshold     int   `json:"threshold"`
	Restarts      int   `json:"restarts"`
	Seed          int64 `json:"seed"`
	MaxIterations int   `json:"max_iterations"`
}

// NewConfig creates a config with the default parameters for k clusters.
func NewConfig(k int) Config {
	return Config{
		K:             k,
		StartView:     View1,
		Threshold:     DefaultThreshold,
		Restarts:      ml.DefaultRestarts,
		MaxIterations: DefaultMaxIterations,
	}
}

// WithStartView sets the view seeded by the initial partition.
func (c Config) WithStartView(v View) Config {
	c.StartView = v
	return c
}

// WithThreshold sets the stall threshold.
func (c Config) WithThreshold(n int) Config {
	c.Threshold = n
	return c
}

// WithSeed sets the seed of the initial partition.
func (c Config) WithSeed(seed int64) Config {
	c.Seed = seed
	return c
}

// WithMaxIterations caps the number of iterations, 0 means no cap.
func (c Config) WithMaxIterations(n int) Config {
	c.MaxIterations = n
	return c
}

// Validate checks the config values.
func (c Config) Validate() error {
	if c.K < 1 {
		return fmt.Errorf("k = %d: %w", c.K, ErrInvalidK)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold = %d: %w", c.Threshold, ErrInvalidThreshold)
	}
	if c.StartView != View1 && c.StartView != View2 {
		return fmt.Errorf("start view = %d: %w", c.StartView, ErrInvalidView)
	}
	return nil
}
