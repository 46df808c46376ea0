package caribou

import (
	"fmt"
	"log/slog"
)

// debugLogger receives debug-mode diagnostics. Set by Scene.SetDebugMode.
var debugLogger = slog.Default()

// batchStats summarizes a frame's batch for debug logging.
type batchStats struct {
	topLevel int
	leaves   int
	paths    int
	texts    int
	picts    int
	depth    int
}

func collectBatchStats(b *Batch, depth int, st *batchStats) {
	if depth > st.depth {
		st.depth = depth
	}
	for _, op := range b.Ops() {
		switch op.Type {
		case OpPath:
			st.paths++
		case OpText:
			st.texts++
		case OpPict:
			st.picts++
		case OpBatch:
			collectBatchStats(op.Batch, depth+1, st)
			continue
		}
		st.leaves++
	}
}

// debugLogBatch logs the shape of a frame's batch.
func debugLogBatch(b *Batch) {
	st := batchStats{topLevel: b.Len()}
	collectBatchStats(b, 0, &st)
	debugLogger.Debug("frame batch",
		"ops", st.topLevel, "leaves", st.leaves,
		"paths", st.paths, "texts", st.texts, "picts", st.picts,
		"depth", st.depth)
}

// debugCheckDisposed panics with a descriptive message when a disposed widget
// is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(w *Widget, op string) {
	if w.disposed {
		panic(fmt.Sprintf("caribou debug: %s on disposed widget %q (ID was %d)", op, w.Name, w.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(w *Widget) {
	depth := 0
	for p := w; p != nil; p = p.ParentWidget() {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "widget", w.Name)
	}
}

// debugCheckChildCount warns if a widget has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(w *Widget) {
	if n := w.Children.Len(); n > debugMaxChildCount {
		debugLogger.Warn("child count exceeds threshold",
			"widget", w.Name, "children", n, "threshold", debugMaxChildCount)
	}
}

// debugMissingPayload notes a flavor handler that found no payload to act on.
func debugMissingPayload(w *Widget, flavor string) {
	if !globalDebug {
		return
	}
	debugLogger.Debug("missing payload", "flavor", flavor, "widget", w.Name, "id", w.ID)
}
