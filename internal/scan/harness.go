package scan

// Harness wires a standalone root Context to a queue a test can drain
// directly, letting decoder unit tests call Plugin.Scan (or Plugin.Start)
// without spinning up a full Scanner. It mirrors the original
// implementation's own test-only exec_plugin_scan helper: build a context,
// run the plugin, then drain whatever it sent.
type Harness struct {
	Ctx *Context
	q   *outcomeQueue
}

// NewHarness builds a Harness whose root Context has no parent (RelPath is
// empty) and uses picker/filter for anything the plugin under test recurses
// into. A nil picker behaves like an empty Picker: any Recurse call finds no
// match and is a silent no-op, which is the right default for leaf decoders
// that never call Recurse at all.
func NewHarness(picker *Picker, filter Filter) *Harness {
	if picker == nil {
		picker = NewPickerBuilder().BuildAsIs()
	}
	if filter == nil {
		filter = AllowAll
	}
	q := newOutcomeQueue()
	return &Harness{
		Ctx: &Context{
			rootStart: "test",
			filter:    filter,
			picker:    picker,
			out:       sender{q: q},
		},
		q: q,
	}
}

// WithRowBatchLimit sets the sqlite row batch limit the harness's Context
// reports, for decoder tests that need to exercise a specific limit.
func (h *Harness) WithRowBatchLimit(limit int) *Harness {
	h.Ctx.sqliteRowBatchLimit = limit
	return h
}

// Drain closes the send side and returns every Outcome pushed so far, in
// emission order. Call it once the plugin call under test has returned.
func (h *Harness) Drain() []Outcome {
	h.q.CloseSend()
	var out []Outcome
	for {
		o, ok := h.q.Pop()
		if !ok {
			break
		}
		out = append(out, o)
	}
	return out
}
