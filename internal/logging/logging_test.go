package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_Defaults(t *testing.T) {
	l, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if l.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", l.GetLevel())
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "debug", Format: "json", Out: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	l.WithField("plugin", "mock").Debug("loaded")

	var rec map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["plugin"] != "mock" {
		t.Errorf("plugin field = %v, want mock", rec["plugin"])
	}
	if rec["msg"] != "loaded" {
		t.Errorf("msg = %v, want loaded", rec["msg"])
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Format: "text", Out: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	l.WithField("gate", "permission").Warn("rejected")
	if !strings.Contains(buf.String(), "gate=permission") {
		t.Errorf("text output missing field: %q", buf.String())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"bad level", Options{Level: "loud"}},
		{"bad format", Options{Format: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) returned nil")
	}
	l := Discard()
	if OrDiscard(l) != l {
		t.Error("OrDiscard should return the given logger")
	}
}
