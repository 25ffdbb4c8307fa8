package browser

import (
	"tb/internal/dispnode"
	"tb/internal/value"
)

// rootState pairs a Source with the display root built over it, so the
// dispnode tree stays alive exactly as long as the Source it was built
// from.
type rootState struct {
	src  value.Source
	disp *dispnode.Node
}

func buildRootState(src value.Source, hideRoot bool, width int) *rootState {
	v := value.NewRoot(src.Root())
	return &rootState{src: src, disp: dispnode.New(nil, v, width, true, hideRoot)}
}

// TransformManager owns up to three root states: base (the backend's
// original source), cur (the last accepted transform), and next (a
// proposal still being edited). Each state keeps its own Source alive
// for as long as any display node built from it is reachable.
type TransformManager struct {
	hideRoot bool
	base     *rootState
	cur      *rootState
	next     *rootState
}

// NewTransformManager builds a manager rooted at src's own root.
func NewTransformManager(src value.Source, hideRoot bool, width int) *TransformManager {
	base := buildRootState(src, hideRoot, width)
	return &TransformManager{hideRoot: hideRoot, base: base, cur: base}
}

// Root returns the display root currently on screen: next while a
// proposal is live, otherwise cur.
func (tm *TransformManager) Root() *dispnode.Node {
	if tm.next != nil {
		return tm.next.disp
	}
	return tm.cur.disp
}

// Propose calls cur's Source.Transform(query) and installs the result
// (or an error StatMsg root on failure) as next.
func (tm *TransformManager) Propose(query string, width int) {
	src, err := tm.cur.src.Transform(query)
	if err != nil {
		tm.next = buildRootState(value.StatSource{Msg: value.NewError(err.Error())}, false, width)
		return
	}
	tm.next = buildRootState(src, tm.hideRoot, width)
}

// Accept promotes next to cur.
func (tm *TransformManager) Accept() {
	if tm.next != nil {
		tm.cur = tm.next
		tm.next = nil
	}
}

// Reject discards the pending proposal, reverting Root() to cur.
func (tm *TransformManager) Reject() {
	tm.next = nil
}

// Clear discards both cur and next, reverting to base.
func (tm *TransformManager) Clear() {
	tm.cur = tm.base
	tm.next = nil
}
