package testing

import (
	"testing"

	"github.com/go-drift/domkit/pkg/core"
	"github.com/go-drift/domkit/pkg/host"
	"github.com/go-drift/domkit/pkg/loop"
	"github.com/go-drift/domkit/pkg/render"
	"github.com/go-drift/domkit/pkg/theme"
)

// Tester produces widget trees, mounts them on a recording host and
// delivers simulated input, re-rendering after every interaction.
type Tester struct {
	// Host records every host call made by the widgets under test.
	Host *host.Recorder
	// Loop is the dispatch loop drained after each interaction.
	Loop *loop.Loop

	producer *render.Producer
	build    func() core.Config
	root     *render.Node
	pumps    int
}

// NewTester creates a tester rendering under th.
func NewTester(th theme.Theme) *Tester {
	return &Tester{
		Host:     host.NewRecorder(),
		Loop:     loop.New(),
		producer: render.NewProducer(th),
	}
}

// NewTesterWithT creates a tester that drains its loop via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t testing.TB, th theme.Theme) *Tester {
	tester := NewTester(th)
	t.Cleanup(func() { tester.Loop.Flush() })
	return tester
}

// Producer returns the producer used for every pump.
func (t *Tester) Producer() *render.Producer {
	return t.producer
}

// PumpWidget renders a fixed configuration.
func (t *Tester) PumpWidget(cfg core.Config) error {
	return t.PumpBuilder(func() core.Config { return cfg })
}

// PumpBuilder installs build as the tree source and renders it. Stateful
// widgets such as a grid controller pass their Build method so later pumps
// observe new state.
func (t *Tester) PumpBuilder(build func() core.Config) error {
	t.build = build
	return t.Pump()
}

// Pump drains queued work and renders the current builder again.
func (t *Tester) Pump() error {
	t.Loop.Drain()
	if t.build == nil {
		return nil
	}
	root, err := t.producer.Produce(t.build())
	if err != nil {
		return err
	}
	if err := t.Host.Mount(root); err != nil {
		return err
	}
	t.root = root
	t.pumps++
	return nil
}

// Pumps returns the number of successful renders.
func (t *Tester) Pumps() int {
	return t.pumps
}

// Root returns the last rendered tree.
func (t *Tester) Root() *render.Node {
	return t.root
}

// Find evaluates finder against the last rendered tree.
func (t *Tester) Find(finder Finder) FinderResult {
	return Find(t.root, finder)
}

// Snapshot captures the last rendered tree.
func (t *Tester) Snapshot() *Snapshot {
	return CaptureSnapshot(t.root)
}
