package caribou

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// debugScene returns a scene in debug mode logging to buf. Debug mode is
// process-wide, so it is switched off again at cleanup.
func debugScene(t *testing.T) (*Scene, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s := NewScene()
	s.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	s.SetDebugMode(true)
	t.Cleanup(func() {
		s.SetDebugMode(false)
		debugLogger = slog.Default()
	})
	return s, &buf
}

func TestDebugDisposedParentPanics(t *testing.T) {
	debugScene(t)
	parent := NewWidget("parent")
	parent.Dispose()

	var msg any
	func() {
		defer func() { msg = recover() }()
		parent.AddChild(NewWidget("child"))
	}()
	assert.Contains(t, msg, `disposed widget "parent"`)
}

func TestDebugDisposedChildPanics(t *testing.T) {
	debugScene(t)
	parent := NewWidget("parent")
	child := NewWidget("child")
	child.Dispose()

	assert.Panics(t, func() { parent.AddChild(child) })
}

func TestDebugTreeDepthWarning(t *testing.T) {
	_, buf := debugScene(t)
	w := NewWidget("n0")
	for range debugMaxTreeDepth + 1 {
		c := NewWidget("deep")
		w.AddChild(c)
		w = c
	}
	assert.Contains(t, buf.String(), "tree depth exceeds threshold")
}

func TestDebugChildCountWarning(t *testing.T) {
	_, buf := debugScene(t)
	parent := NewWidget("wide")
	for range debugMaxChildCount + 1 {
		parent.AddChild(NewWidget("c"))
	}
	assert.Contains(t, buf.String(), "child count exceeds threshold")
}

func TestDebugDrawLogsBatchStats(t *testing.T) {
	s, buf := debugScene(t)
	btn := NewButton(s)
	ButtonOf(btn).ApplyDefaultStyle()
	s.Root().AddChild(btn)
	s.Draw()

	out := buf.String()
	assert.Contains(t, out, "frame batch")
	assert.Contains(t, out, "leaves=2")
}

func TestDebugMissingPayloadLogged(t *testing.T) {
	s, buf := debugScene(t)
	btn := NewButton(s)
	btn.Data.Set(nil)
	btn.OnMouseEnter.Broadcast()
	assert.Contains(t, buf.String(), "missing payload")
}

func TestCollectBatchStats(t *testing.T) {
	inner := NewBatch(textOp("a"), DrawPath(IdentityTransform(), NewPath(), Brush{}))
	b := NewBatch(DrawBatch(IdentityTransform(), inner), textOp("b"))
	var st batchStats
	collectBatchStats(b, 0, &st)
	assert.Equal(t, 3, st.leaves)
	assert.Equal(t, 2, st.texts)
	assert.Equal(t, 1, st.paths)
	assert.Equal(t, 1, st.depth)
}
