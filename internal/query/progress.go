package query

// NodeKind names the variant of a query node in progress reports.
type NodeKind string

const (
	NodeBasic    NodeKind = "basic"
	NodeFiltered NodeKind = "filtered"
	NodeNegated  NodeKind = "negated"
	NodeNested   NodeKind = "nested"
)

// Progress is reported once for every node after it has been evaluated.
// Nodes report in post-order: children before their parent.
type Progress struct {
	Node    NodeKind
	Query   string
	Depth   int
	Matches int
}

// Listener receives evaluation progress.
type Listener interface {
	OnProgress(Progress)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Progress)

// OnProgress calls f(p).
func (f ListenerFunc) OnProgress(p Progress) { f(p) }

type nopListener struct{}

func (nopListener) OnProgress(Progress) {}
