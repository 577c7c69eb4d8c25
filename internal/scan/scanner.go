package scan

import (
	stdcontext "context"
)

const defaultSqliteRowBatchLimit = 5000

// Options configures a Scanner. Picker is required; a nil Filter means
// AllowAll, and the representations and the sqlite row batch limit fall back
// to sane defaults when left zero-valued.
type Options struct {
	Filter              Filter
	Picker              *Picker
	BinRepr             BinRepr
	DateRepr            DateRepr
	SqliteRowBatchLimit int
}

// Scanner runs a single scan of one root against one Picker/Filter pair. It
// holds no state beyond its configuration, so a single Scanner can be reused
// across multiple calls to Scan.
type Scanner struct {
	filter              Filter
	picker              *Picker
	binRepr             BinRepr
	dateRepr            DateRepr
	sqliteRowBatchLimit int
}

// NewScanner builds a Scanner from opts, applying defaults for any
// zero-valued field that has one.
func NewScanner(opts Options) *Scanner {
	filter := opts.Filter
	if filter == nil {
		filter = AllowAll
	}
	rowLimit := opts.SqliteRowBatchLimit
	if rowLimit <= 0 {
		rowLimit = defaultSqliteRowBatchLimit
	}
	return &Scanner{
		filter:              filter,
		picker:              opts.Picker,
		binRepr:             opts.BinRepr,
		dateRepr:            opts.DateRepr,
		sqliteRowBatchLimit: rowLimit,
	}
}

// Scan starts a scan of root on its own goroutine and returns immediately
// with an Iterator over the results. The goroutine is the scan's single
// producer: spec.md §5 rules out any internal fan-out, so every recursive
// decode happens serially on that one goroutine.
//
// If ctx is cancelled, the Iterator stops yielding further entries and
// Iterator.Err reports ctx.Err(); this sits alongside, not instead of,
// cooperative cancellation via Iterator.Close.
func (s *Scanner) Scan(ctx stdcontext.Context, root string) *Iterator {
	q := newOutcomeQueue()
	it := &Iterator{q: q, ctx: ctx}

	root0 := &Context{
		rootStart:           root,
		relPath:             "",
		filter:              s.filter,
		picker:              s.picker,
		out:                 sender{q: q},
		binRepr:             s.binRepr,
		dateRepr:            s.dateRepr,
		sqliteRowBatchLimit: s.sqliteRowBatchLimit,
	}

	go func() {
		defer q.CloseSend()
		plugin := s.picker.PickStart(root)
		if plugin == nil {
			q.Push(Outcome{Err: newDispatchError(root)})
			return
		}
		if err := plugin.Start(root0, root); err != nil {
			scanErr := WrapPluginError(plugin.Name(), "", err)
			q.Push(Outcome{Err: scanErr})
		}
	}()

	return it
}

// Iterator yields the Outcome stream produced by a single Scan call, one
// entry at a time, in the order the producer emitted them.
type Iterator struct {
	q       *outcomeQueue
	ctx     stdcontext.Context
	current Outcome
	err     error
	closed  bool
}

// Next advances the iterator and reports whether a new Outcome is available
// in Entry()/Err(). It returns false once the producer has finished and the
// queue is drained, or once ctx was cancelled, or after Close.
func (it *Iterator) Next() bool {
	if it.closed || it.err != nil {
		return false
	}
	if it.ctx != nil {
		select {
		case <-it.ctx.Done():
			it.err = it.ctx.Err()
			return false
		default:
		}
	}
	o, ok := it.q.Pop()
	if !ok {
		return false
	}
	it.current = o
	return true
}

// Entry returns the Entry produced by the most recent successful Next call.
// Its value is meaningless unless Err returns nil for the same step.
func (it *Iterator) Entry() Entry { return it.current.Entry }

// Err returns the error produced by the most recent successful Next call, if
// any, or the reason iteration stopped (ctx cancellation), if any.
func (it *Iterator) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.current.Err
}

// Close tells the producer goroutine the consumer is gone. The decoder's
// next send fails with a channel Error, so it unwinds instead of continuing
// to decode. Close is idempotent and safe to call even after
// Next has returned false naturally.
func (it *Iterator) Close() {
	if it.closed {
		return
	}
	it.closed = true
	it.q.CloseRecv()
}

// CollectAll drains it fully and returns every Outcome, successes and
// failures alike, in emission order.
func CollectAll(it *Iterator) []Outcome {
	var out []Outcome
	for it.Next() {
		out = append(out, Outcome{Entry: it.Entry(), Err: it.Err()})
	}
	return out
}

// CollectOK drains it fully and returns only the successfully decoded
// entries, discarding error outcomes.
func CollectOK(it *Iterator) []Entry {
	var out []Entry
	for it.Next() {
		if it.Err() == nil {
			out = append(out, it.Entry())
		}
	}
	return out
}

// CollectStrict drains it and returns every entry, but stops and returns the
// first error encountered (closing the iterator so the producer unwinds).
func CollectStrict(it *Iterator) ([]Entry, error) {
	var out []Entry
	for it.Next() {
		if err := it.Err(); err != nil {
			it.Close()
			return out, err
		}
		out = append(out, it.Entry())
	}
	return out, it.Err()
}
