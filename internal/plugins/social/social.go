// Package social is a sample social-automation extension. It queues posts,
// sanitizes their text and publishes them in batches. It requires the
// network_access permission; publishing is recorded in state rather than
// sent anywhere.
package social

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agentx-labs/plugx/internal/extension"
	"github.com/agentx-labs/plugx/internal/manifest"
	"github.com/google/uuid"
)

// Name is the registration and directory name.
const Name = "social"

// Descriptor is the manifest shipped with the extension.
//
//go:embed plugin.yaml
var Descriptor []byte

const (
	keyQueue     = "queue"
	keyPublished = "published"
)

// ErrEmptyPost is returned when a post has no text after sanitization.
var ErrEmptyPost = errors.New("post text is empty")

// Post is one queued post.
type Post struct {
	ID       string
	Text     string
	QueuedAt time.Time
}

// Social embeds the base implementation and adds a post queue.
type Social struct {
	*extension.Base
	now func() time.Time
}

var _ extension.Extension = (*Social)(nil)

// New is the catalog constructor.
func New(m *manifest.Manifest, env extension.Env) (extension.Extension, error) {
	return &Social{Base: extension.NewBase(m, env), now: time.Now}, nil
}

// UnloadFlush declines the unload flush: every queue change is already
// persisted by SetState.
func (p *Social) UnloadFlush() extension.FlushPolicy { return extension.KeepOnUnload }

func (p *Social) OnUnload() error {
	p.Logger().WithField("queued", len(p.Queue())).Debug("social unloaded")
	return nil
}

func (p *Social) RenderInterface(s extension.Surface) error {
	s.Heading(p.Name())
	s.Text("Queued posts", fmt.Sprint(len(p.Queue())))
	s.Text("Published", fmt.Sprint(p.Published()))
	s.Text("Interval", p.Interval().String())
	s.Toggle("enabled", "Enabled", p.IsEnabled())
	s.Input("post_text", "New post", "")
	s.Button("publish", "Publish next batch")
	return nil
}

// Interval is the configured delay between batches.
func (p *Social) Interval() time.Duration {
	return time.Duration(toInt(p.GetConfig("post_interval_minutes", 30))) * time.Minute
}

// Enqueue sanitizes text and appends it to the persisted queue.
func (p *Social) Enqueue(text string) (Post, error) {
	text = strings.TrimSpace(p.SanitizeInput("post_text", text))
	if text == "" {
		return Post{}, ErrEmptyPost
	}
	post := Post{ID: uuid.NewString(), Text: text, QueuedAt: p.now().UTC()}

	queue := append(p.rawQueue(), map[string]interface{}{
		"id":        post.ID,
		"text":      post.Text,
		"queued_at": post.QueuedAt.Format(time.RFC3339),
	})
	if err := p.SetState(keyQueue, queue); err != nil {
		return post, err
	}
	return post, nil
}

// Queue returns the queued posts in order.
func (p *Social) Queue() []Post {
	raw := p.rawQueue()
	posts := make([]Post, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		post := Post{ID: fmt.Sprint(m["id"]), Text: fmt.Sprint(m["text"])}
		if ts, ok := m["queued_at"].(string); ok {
			post.QueuedAt, _ = time.Parse(time.RFC3339, ts)
		}
		posts = append(posts, post)
	}
	return posts
}

// Publish removes up to batch_size posts from the head of the queue and
// returns them. It fails when the host no longer grants network access.
func (p *Social) Publish() ([]Post, error) {
	if !p.IsEnabled() {
		return nil, fmt.Errorf("%s is disabled or lacks network access", p.Name())
	}
	queue := p.Queue()
	n := toInt(p.GetConfig("batch_size", 5))
	if n <= 0 || n > len(queue) {
		n = len(queue)
	}
	batch := queue[:n]

	rest := p.rawQueue()[n:]
	if err := p.SetState(keyQueue, rest); err != nil {
		return nil, err
	}
	if err := p.SetState(keyPublished, p.Published()+n); err != nil {
		return batch, err
	}
	p.Logger().WithField("posts", n).Info("published batch")
	return batch, nil
}

// Published is the number of posts published so far.
func (p *Social) Published() int {
	return toInt(p.GetState(keyPublished, 0))
}

func (p *Social) rawQueue() []interface{} {
	q, _ := p.GetState(keyQueue, nil).([]interface{})
	return append([]interface{}(nil), q...)
}

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
