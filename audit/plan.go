// Package audit checks boot traces and target layouts on the host.
package audit

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"omibyte.io/stackguard/boot"
)

// Transition is one recorded state change of a boot sequence.
type Transition struct {
	From boot.State
	To   boot.State
}

// Plan is the dependency graph of the boot stages.
type Plan struct {
	graph *simple.DirectedGraph
	rank  map[boot.State]int
}

// DefaultPlan is the fixed boot order: paint, entry, loop, halt.
func DefaultPlan() *Plan {
	states := boot.States()
	edges := make([]Transition, 0, len(states)-1)
	for i := 1; i < len(states); i++ {
		edges = append(edges, Transition{From: states[i-1], To: states[i]})
	}

	plan, err := NewPlan(edges)
	if err != nil {
		panic(err)
	}
	return plan
}

// NewPlan builds a plan from the allowed transitions. The transitions must
// form a DAG.
func NewPlan(edges []Transition) (*Plan, error) {
	g := simple.NewDirectedGraph()
	for _, e := range edges {
		g.SetEdge(g.NewEdge(simple.Node(e.From), simple.Node(e.To)))
	}

	sorted, err := topo.Sort(g)
	if err != nil {
		return nil, ErrCycle
	}

	rank := make(map[boot.State]int, len(sorted))
	for i, n := range sorted {
		rank[boot.State(n.ID())] = i
	}
	return &Plan{graph: g, rank: rank}, nil
}

// Rank returns the position of s in the plan's topological order.
func (p *Plan) Rank(s boot.State) (int, bool) {
	r, ok := p.rank[s]
	return r, ok
}

// Check verifies that trace is a continuous, forward-only walk along the plan
// starting at boot.NotStarted.
func (p *Plan) Check(trace []Transition) error {
	current := boot.NotStarted
	for _, t := range trace {
		if t.From != current {
			return ErrDiscontinuous
		}

		from, okFrom := p.Rank(t.From)
		to, okTo := p.Rank(t.To)
		if okFrom && okTo && to <= from {
			return ErrBackward
		}
		if !p.graph.HasEdgeFromTo(int64(t.From), int64(t.To)) {
			return ErrOutOfOrder
		}
		current = t.To
	}
	return nil
}

// Recorder collects transitions. Its Observe method plugs into
// boot.Sequencer.Observe.
type Recorder struct {
	Transitions []Transition
}

func (r *Recorder) Observe(from, to boot.State) {
	r.Transitions = append(r.Transitions, Transition{From: from, To: to})
}

// Last returns the most recent state, or boot.NotStarted.
func (r *Recorder) Last() boot.State {
	if len(r.Transitions) == 0 {
		return boot.NotStarted
	}
	return r.Transitions[len(r.Transitions)-1].To
}
