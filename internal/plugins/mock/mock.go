// Package mock is a demonstration extension: it renders a greeting, keeps a
// persisted counter and exercises every hook.
package mock

import (
	_ "embed"
	"fmt"

	"github.com/agentx-labs/plugx/internal/extension"
	"github.com/agentx-labs/plugx/internal/manifest"
)

// Name is the registration and directory name.
const Name = "mock"

// Descriptor is the manifest shipped with the extension.
//
//go:embed plugin.yaml
var Descriptor []byte

const keyCounter = "counter"

// Mock embeds the base implementation and adds a counter.
type Mock struct {
	*extension.Base
}

var _ extension.Extension = (*Mock)(nil)

// New is the catalog constructor.
func New(m *manifest.Manifest, env extension.Env) (extension.Extension, error) {
	return &Mock{Base: extension.NewBase(m, env)}, nil
}

func (p *Mock) OnInit() error {
	p.Logger().WithField("counter", p.Counter()).Debug("mock initialized")
	return nil
}

func (p *Mock) OnEnable() error {
	p.Logger().Info("mock enabled")
	return nil
}

func (p *Mock) OnDisable() error {
	p.Logger().Info("mock disabled")
	return nil
}

func (p *Mock) UnloadFlush() extension.FlushPolicy { return extension.FlushOnUnload }

func (p *Mock) RenderInterface(s extension.Surface) error {
	s.Heading(p.Name())
	s.Text("Message", p.Greet("world"))
	s.Text("Counter", fmt.Sprint(p.Counter()))
	s.Toggle("enabled", "Enabled", p.IsEnabled())
	s.Input("greeting", "Greeting", p.greeting())
	s.Button("increment", "Increment counter")
	return nil
}

// Greet returns the configured greeting addressed to name. name is
// sanitized.
func (p *Mock) Greet(name string) string {
	return fmt.Sprintf("%s, %s!", p.greeting(), p.SanitizeInput("name", name))
}

// Counter returns the persisted counter.
func (p *Mock) Counter() int {
	return toInt(p.GetState(keyCounter, 0))
}

// Increment adds the configured step to the counter and persists it.
func (p *Mock) Increment() (int, error) {
	n := p.Counter() + toInt(p.GetConfig("step", 1))
	if err := p.SetState(keyCounter, n); err != nil {
		return n, err
	}
	return n, nil
}

func (p *Mock) greeting() string {
	return fmt.Sprint(p.GetConfig("greeting", "Hello"))
}

// toInt accepts the numeric shapes the state backends decode to.
func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
