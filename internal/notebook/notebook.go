// Package notebook is the reference sibling rendering sink described in
// §6 of the memory-sync specification: an optional observer that renders
// each EnrichedMemory into a second, note-per-commit knowledge base
// instead of a section inside the routed memory file. It is wired in
// behind the sync.Observer interface and is never required for primary
// memory placement to succeed.
//
// Dispatch is fire-and-forget, in the shape of the teacher's hook
// runner: Observe returns immediately and the actual file writes happen
// on a background goroutine, so a slow or failing disk never blocks or
// fails a sync.
package notebook

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/synaptic-mem/synaptic/internal/model"
)

// Writer renders one markdown note per commit under <root>/<dir>/<hash>.md.
type Writer struct {
	root string
	dir  string
	log  *slog.Logger

	wg sync.WaitGroup
}

// defaultDir is where notes land relative to the repository root.
const defaultDir = ".synaptic/notes"

// NewWriter returns a Writer rooted at repoRoot. log may be nil, in which
// case writes fail silently just as the teacher's hook runner does.
func NewWriter(repoRoot string, log *slog.Logger) *Writer {
	return &Writer{root: repoRoot, dir: defaultDir, log: log}
}

// Observe satisfies sync.Observer. It is called once per reconciled
// target, after the Reconciler has durably placed that target's
// entries, with the same ordering the reconciler saw.
func (w *Writer) Observe(target string, entries []model.EnrichedMemory) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for _, m := range entries {
			if err := w.writeOne(target, m); err != nil {
				w.logError(target, m, err)
			}
		}
	}()
}

// Wait blocks until every Observe call dispatched so far has finished
// writing. Intended for tests and for a CLI that wants to report
// notebook errors before exiting.
func (w *Writer) Wait() {
	w.wg.Wait()
}

func (w *Writer) writeOne(target string, m model.EnrichedMemory) error {
	notesDir := filepath.Join(w.root, w.dir)
	if err := os.MkdirAll(notesDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(notesDir, m.Identity.Short+".md")
	content := fmt.Sprintf(
		"# %s\n\nRouted to: `%s`\nAuthor: %s\nType: %s\n\n%s\n",
		m.Identity.Short, target, m.Author, m.Type, m.Memory,
	)
	return os.WriteFile(path, []byte(content), 0o644)
}

func (w *Writer) logError(target string, m model.EnrichedMemory, err error) {
	if w.log == nil {
		return
	}
	w.log.Warn("notebook: failed to write note",
		"commit", m.Identity.Short, "target", target, "error", err)
}

// Discard is a no-op Observer, useful as the default when no sibling
// rendering sink is configured.
var Discard discardObserver

type discardObserver struct{}

func (discardObserver) Observe(string, []model.EnrichedMemory) {}
