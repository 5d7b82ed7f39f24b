package view

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
	"go.uber.org/zap"
)

type loadFunc func(ctx context.Context) (map[enum.DatasetKey][]entity.Row, error)

// board is the state shared by every view: the datasets, the banner and the
// subscribers. All fields below mu are guarded by it.
type board struct {
	kind enum.ViewKind
	log  *zap.Logger
	wg   sync.WaitGroup

	mu      sync.Mutex
	order   []enum.DatasetKey
	sets    map[enum.DatasetKey]*Dataset
	banner  []string
	failed  bool
	tab     Tab
	mounted bool
	// gen changes on every unmount so late results can be told apart.
	gen    int
	subs   map[int]func(Snapshot)
	nextID int
}

func newBoard(kind enum.ViewKind, log *zap.Logger, keys ...enum.DatasetKey) *board {
	if log == nil {
		log = zap.NewNop()
	}
	b := &board{
		kind:  kind,
		log:   log.With(zap.String("view", kind.String())),
		order: keys,
		sets:  make(map[enum.DatasetKey]*Dataset, len(keys)),
		subs:  make(map[int]func(Snapshot)),
	}
	for _, k := range keys {
		b.sets[k] = &Dataset{Key: k, Rows: []entity.Row{}}
	}
	return b
}

// Kind returns the dashboard kind.
func (b *board) Kind() enum.ViewKind { return b.kind }

// Snapshot returns a copy of the current state.
func (b *board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot()
}

// Subscribe registers fn for every state transition.
func (b *board) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Wait blocks until every fetch issued so far has settled.
func (b *board) Wait() { b.wg.Wait() }

// Unmount stops the view from accepting results. Fetches in flight are not
// cancelled; whatever they return is dropped.
func (b *board) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.mounted {
		return
	}
	b.mounted = false
	b.gen++
	for _, d := range b.sets {
		if d.Status == StatusLoading {
			d.Status = StatusIdle
		}
	}
}

func (b *board) mount() {
	b.mu.Lock()
	b.mounted = true
	b.mu.Unlock()
}

// fetch moves keys from idle to loading and runs load in the background.
// It does nothing, and returns false, when the view is unmounted or any key
// has already left idle.
func (b *board) fetch(keys []enum.DatasetKey, critical bool, load loadFunc) bool {
	b.mu.Lock()
	if !b.mounted {
		b.mu.Unlock()
		return false
	}
	for _, k := range keys {
		if b.sets[k].Status != StatusIdle {
			b.mu.Unlock()
			return false
		}
	}
	for _, k := range keys {
		b.sets[k].Status = StatusLoading
	}
	gen := b.gen
	b.wg.Add(1)
	b.publish()

	go func() {
		defer b.wg.Done()
		out, err := load(context.Background())
		b.settle(gen, keys, critical, out, err)
	}()
	return true
}

func (b *board) settle(gen int, keys []enum.DatasetKey, critical bool, out map[enum.DatasetKey][]entity.Row, err error) {
	b.mu.Lock()
	if !b.mounted || gen != b.gen {
		b.mu.Unlock()
		b.log.Debug("discarding result for unmounted view", zap.Stringers("datasets", keys))
		return
	}

	if err != nil {
		msg := err.Error()
		for _, k := range keys {
			d := b.sets[k]
			d.Status = StatusFailed
			d.Err = msg
			d.Rows = []entity.Row{}
		}
		b.banner = append(b.banner, fmt.Sprintf("Failed to load %s: %s", joinKeys(keys), msg))
		if critical {
			b.failed = true
		}
		b.log.Warn("dataset fetch failed", zap.Stringers("datasets", keys), zap.Bool("critical", critical), zap.Error(err))
	} else {
		for _, k := range keys {
			d := b.sets[k]
			d.Status = StatusReady
			d.Err = ""
			d.Rows = out[k]
			if d.Rows == nil {
				d.Rows = []entity.Row{}
			}
		}
	}
	b.publish()
}

func (b *board) setTab(t Tab) {
	b.mu.Lock()
	b.tab = t
	b.publish()
}

// publish must be called with mu held; it releases it before notifying.
func (b *board) publish() {
	snap := b.snapshot()
	subs := make([]func(Snapshot), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (b *board) snapshot() Snapshot {
	s := Snapshot{
		Kind:     b.kind,
		Datasets: make([]Dataset, 0, len(b.order)),
		Banner:   strings.Join(b.banner, "\n"),
		Failed:   b.failed,
		Tab:      b.tab,
	}
	for _, k := range b.order {
		d := *b.sets[k]
		d.Rows = make([]entity.Row, len(b.sets[k].Rows))
		copy(d.Rows, b.sets[k].Rows)
		s.Datasets = append(s.Datasets, d)
	}
	return s
}

func joinKeys(keys []enum.DatasetKey) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
