package social

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agentx-labs/plugx/internal/extension"
	"github.com/agentx-labs/plugx/internal/manifest"
	"github.com/agentx-labs/plugx/internal/security"
	"github.com/agentx-labs/plugx/internal/state"
	"github.com/agentx-labs/plugx/internal/surface"
)

func newSocial(t *testing.T, env extension.Env) *Social {
	t.Helper()
	m, err := manifest.Parse(Descriptor, "social")
	if err != nil {
		t.Fatalf("parsing descriptor: %v", err)
	}
	ext, err := New(m, env)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	p := ext.(*Social)
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return p
}

func granted() security.Flags { return security.Flags{AllowNetworkAccess: true} }

func TestDescriptor(t *testing.T) {
	m, err := manifest.Parse(Descriptor, "social")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if ok, _ := security.Check(m.Security.RequiredPermissions, security.Flags{}); ok {
		t.Error("social should require network access")
	}
	if !m.SanitizesField("post_text") {
		t.Error("social should sanitize post_text")
	}
}

func TestEnqueue_SanitizesAndPersists(t *testing.T) {
	backend := state.NewFileBackend(t.TempDir())
	p := newSocial(t, extension.Env{State: backend, Security: granted})

	post, err := p.Enqueue(`launch day<script>steal()</script>!`)
	if err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}
	if strings.Contains(post.Text, "<script") {
		t.Errorf("queued text not sanitized: %q", post.Text)
	}
	if !strings.HasPrefix(post.Text, "launch day") {
		t.Errorf("queued text lost content: %q", post.Text)
	}

	again := newSocial(t, extension.Env{State: backend, Security: granted})
	q := again.Queue()
	if len(q) != 1 || q[0].ID != post.ID || q[0].Text != post.Text {
		t.Fatalf("Queue() after reload = %+v", q)
	}
	if !q[0].QueuedAt.Equal(post.QueuedAt) {
		t.Errorf("QueuedAt = %v, want %v", q[0].QueuedAt, post.QueuedAt)
	}
}

func TestEnqueue_Empty(t *testing.T) {
	p := newSocial(t, extension.Env{Security: granted})
	if _, err := p.Enqueue("<script>only()</script>  "); !errors.Is(err, ErrEmptyPost) {
		t.Errorf("Enqueue() error = %v, want ErrEmptyPost", err)
	}
}

func TestPublish_Batches(t *testing.T) {
	p := newSocial(t, extension.Env{Security: granted})
	if err := p.SetConfig("batch_size", 2); err != nil {
		t.Fatal(err)
	}
	for _, text := range []string{"one", "two", "three"} {
		if _, err := p.Enqueue(text); err != nil {
			t.Fatal(err)
		}
	}

	batch, err := p.Publish()
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if len(batch) != 2 || batch[0].Text != "one" || batch[1].Text != "two" {
		t.Errorf("first batch = %+v", batch)
	}
	if q := p.Queue(); len(q) != 1 || q[0].Text != "three" {
		t.Errorf("remaining queue = %+v", q)
	}
	if p.Published() != 2 {
		t.Errorf("Published() = %d, want 2", p.Published())
	}
}

func TestPublish_RequiresNetwork(t *testing.T) {
	flags := granted()
	p := newSocial(t, extension.Env{Security: func() security.Flags { return flags }})
	if _, err := p.Enqueue("hello"); err != nil {
		t.Fatal(err)
	}

	flags.AllowNetworkAccess = false
	if _, err := p.Publish(); err == nil {
		t.Error("Publish() error = nil without network access")
	}
	if len(p.Queue()) != 1 {
		t.Error("failed Publish() changed the queue")
	}
}

func TestRenderInterfaceAndPolicy(t *testing.T) {
	p := newSocial(t, extension.Env{Security: granted})
	var rec surface.Recorder
	if err := p.RenderInterface(&rec); err != nil {
		t.Fatalf("RenderInterface() error: %v", err)
	}
	if h := rec.Headings(); len(h) != 1 || h[0] != Name {
		t.Errorf("Headings() = %v", h)
	}
	if p.Interval() != 30*time.Minute {
		t.Errorf("Interval() = %v", p.Interval())
	}
	if p.UnloadFlush() != extension.KeepOnUnload {
		t.Error("social should decline the unload flush")
	}
}
