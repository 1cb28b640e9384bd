package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/domkit/pkg/render"
)

// UpdateEnv is the environment variable that switches MatchesFile from
// comparing to rewriting golden files.
const UpdateEnv = "DOMKIT_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures a render tree in a stable, diffable form.
type Snapshot struct {
	Tree *SnapshotNode `json:"tree"`
}

// SnapshotNode is one serialized render node.
type SnapshotNode struct {
	Tag       string          `json:"tag,omitempty"`
	Text      string          `json:"text,omitempty"`
	Key       string          `json:"key,omitempty"`
	Attrs     []SnapshotAttr  `json:"attrs,omitempty"`
	Listeners []string        `json:"on,omitempty"`
	Children  []*SnapshotNode `json:"children,omitempty"`
}

// SnapshotAttr is one serialized attribute. Boolean attributes carry an
// empty value.
type SnapshotAttr struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// CaptureSnapshot serializes root. Attribute order is the producer's
// composition order, so the capture is deterministic.
func CaptureSnapshot(root *render.Node) *Snapshot {
	if root == nil {
		return &Snapshot{}
	}
	return &Snapshot{Tree: captureNode(root)}
}

func captureNode(n *render.Node) *SnapshotNode {
	if n.IsText() {
		return &SnapshotNode{Text: n.Text, Key: n.Key}
	}
	out := &SnapshotNode{Tag: n.Tag, Key: n.Key}
	for _, a := range n.Attrs {
		sa := SnapshotAttr{Name: a.Key}
		if !a.Value.IsBool() {
			sa.Value = a.Value.Text()
		}
		out.Attrs = append(out.Attrs, sa)
	}
	for _, k := range n.Listeners.Kinds() {
		out.Listeners = append(out.Listeners, k.String())
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, captureNode(c))
	}
	return out
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When DOMKIT_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := LoadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to path, creating directories as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Marshal returns the indented JSON form written to golden files.
func (s *Snapshot) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Diff returns a line diff between other (expected) and this snapshot
// (actual). Returns empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := s.Marshal()
	b, _ := other.Marshal()
	if bytes.Equal(a, b) {
		return ""
	}
	return lineDiff(string(b), string(a))
}

// LoadSnapshot reads a golden file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

// lineDiff reports differing lines position by position.
func lineDiff(expected, actual string) string {
	exp := strings.Split(expected, "\n")
	act := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")
	for i := range max(len(exp), len(act)) {
		switch {
		case i >= len(exp):
			fmt.Fprintf(&buf, "+%s\n", act[i])
		case i >= len(act):
			fmt.Fprintf(&buf, "-%s\n", exp[i])
		case exp[i] != act[i]:
			fmt.Fprintf(&buf, "-%s\n+%s\n", exp[i], act[i])
		}
	}
	return buf.String()
}
