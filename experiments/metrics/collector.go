package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Depth      int
	Duration   time.Duration
	Nodes      int // Positions entered, including leaves
	Leaves     int // Positions scored by the static evaluation
	Cutoffs    int // Alpha-beta sibling cutoffs
}

// IterationRecord is one completed depth of iterative deepening.
type IterationRecord struct {
	Depth    int
	Best     int    // Score of the top-ranked move
	BestMove string // Empty when the root has no moves
	Moves    int    // Number of ranked moves returned
	SearchMetric
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string // Empty for a pass
	Score  int
	SearchMetric
}

type GameMetric struct {
	Winner     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Passes     int
	FinalScore int
}

type Collector interface {
	Start(goroutines, depth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	depth      int
	startTime  time.Time
	nodes      atomic.Int64
	leaves     atomic.Int64
	cutoffs    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(goroutines, depth int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Depth:      m.depth,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Leaves:     int(m.leaves.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int) {}
func (m *dummyCollector) AddNode()                    {}
func (m *dummyCollector) AddLeaf()                    {}
func (m *dummyCollector) AddCutoff()                  {}
func (m *dummyCollector) Complete() SearchMetric      { return SearchMetric{} }
