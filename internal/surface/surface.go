// Package surface provides host rendering targets for the CLI: a plain-text
// renderer and a recorder that captures widgets for structured output.
package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentx-labs/plugx/internal/extension"
)

var (
	_ extension.Surface = (*Text)(nil)
	_ extension.Surface = (*Recorder)(nil)
)

// Text writes each widget as one line of plain text.
type Text struct {
	w        io.Writer
	sections int
}

// NewText returns a Text surface writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (t *Text) Heading(text string) {
	if t.sections > 0 {
		fmt.Fprintln(t.w)
	}
	t.sections++
	fmt.Fprintln(t.w, text)
	fmt.Fprintln(t.w, strings.Repeat("=", len(text)))
}

func (t *Text) Text(label, value string) {
	fmt.Fprintf(t.w, "  %s: %s\n", label, value)
}

func (t *Text) Toggle(key, label string, on bool) {
	mark := " "
	if on {
		mark = "x"
	}
	fmt.Fprintf(t.w, "  [%s] %s (%s)\n", mark, label, key)
}

func (t *Text) Input(key, label, value string) {
	fmt.Fprintf(t.w, "  %s [%s]: %q\n", label, key, value)
}

func (t *Text) Button(key, label string) {
	fmt.Fprintf(t.w, "  <%s> (%s)\n", label, key)
}

// Widget is one recorded control.
type Widget struct {
	Kind  string `json:"kind"`
	Key   string `json:"key,omitempty"`
	Label string `json:"label,omitempty"`
	Value string `json:"value,omitempty"`
	On    *bool  `json:"on,omitempty"`
}

// Recorder keeps every widget in order.
type Recorder struct {
	Widgets []Widget `json:"widgets"`
}

func (r *Recorder) Heading(text string) {
	r.Widgets = append(r.Widgets, Widget{Kind: "heading", Label: text})
}

func (r *Recorder) Text(label, value string) {
	r.Widgets = append(r.Widgets, Widget{Kind: "text", Label: label, Value: value})
}

func (r *Recorder) Toggle(key, label string, on bool) {
	r.Widgets = append(r.Widgets, Widget{Kind: "toggle", Key: key, Label: label, On: &on})
}

func (r *Recorder) Input(key, label, value string) {
	r.Widgets = append(r.Widgets, Widget{Kind: "input", Key: key, Label: label, Value: value})
}

func (r *Recorder) Button(key, label string) {
	r.Widgets = append(r.Widgets, Widget{Kind: "button", Key: key, Label: label})
}

// Headings returns the labels of every heading, in order.
func (r *Recorder) Headings() []string {
	var out []string
	for _, w := range r.Widgets {
		if w.Kind == "heading" {
			out = append(out, w.Label)
		}
	}
	return out
}
