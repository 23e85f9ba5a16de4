package engine

import (
	"log/slog"
	"sort"
)

// AggregationOp reduces the raw values collected for one bucket.
type AggregationOp string

const (
	OpSum     AggregationOp = "sum"
	OpCount   AggregationOp = "count"
	OpAverage AggregationOp = "average"
	OpMin     AggregationOp = "min"
	OpMax     AggregationOp = "max"
)

// OtherBucket labels items whose group key resolves to nothing.
const OtherBucket = "Other"

// AggregationConfig specifies a grouped/summed statistic over a subtree.
type AggregationConfig struct {
	TargetKey string        `json:"target_key"`
	GroupBy   string        `json:"group_by,omitempty"`
	Operation AggregationOp `json:"operation,omitempty"`
	LabelKey  string        `json:"label_key,omitempty"`
	ColorKey  string        `json:"color_key,omitempty"`
	Recursive bool          `json:"recursive,omitempty"`
	SourceID  string        `json:"source_id,omitempty"`

	// Filter restricts the candidate child set. Nil admits everything.
	Filter func(*Node) bool `json:"-"`
}

// AggregatedItem is one bucket of an aggregation result.
type AggregatedItem struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Color      string  `json:"color"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// AggregatedData is the full aggregation result for chart and progress views.
type AggregatedData struct {
	Total     float64          `json:"total"`
	Items     []AggregatedItem `json:"items"`
	Max       float64          `json:"max"`
	Min       float64          `json:"min"`
	Average   float64          `json:"average"`
	NodeCount int              `json:"nodeCount"`
	IsEmpty   bool             `json:"isEmpty"`
}

// NodeLookup resolves a node id to a node in the current view, typically
// backed by a tree index. It is a weak reference relation: results are read,
// never owned.
type NodeLookup func(id string) *Node

// Aggregator computes grouped statistics over node subtrees. It remembers
// the first color seen for each group label so repeated renders of the same
// data keep stable colors.
type Aggregator struct {
	slots       *SlotResolver
	logger      *slog.Logger
	groupColors map[string]string
}

// NewAggregator creates an Aggregator reading fields through the given slot
// resolver. A nil logger disables diagnostics.
func NewAggregator(slots *SlotResolver, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Aggregator{
		slots:       slots,
		logger:      logger,
		groupColors: make(map[string]string),
	}
}

// AggregateFrom aggregates from the node named by config.source_id, looked
// up through the provided index. An unresolvable source id degrades to
// aggregating the calling node itself with a logged warning; it never fails
// the render.
func (a *Aggregator) AggregateFrom(n *Node, cfg AggregationConfig, lookup NodeLookup) AggregatedData {
	source := n
	if cfg.SourceID != "" && lookup != nil {
		if resolved := lookup(cfg.SourceID); resolved != nil {
			source = resolved
		} else {
			a.logger.Warn("aggregation source not found, using calling node",
				"source_id", cfg.SourceID, "node_id", n.ID)
		}
	}
	return a.Aggregate(source, cfg)
}

// Aggregate computes the configured statistic over the node's children
// (or full descendant set when recursive). Zero qualifying children yield
// the documented empty result, never an error.
func (a *Aggregator) Aggregate(n *Node, cfg AggregationConfig) AggregatedData {
	empty := AggregatedData{Items: []AggregatedItem{}, IsEmpty: true}
	if n == nil {
		return empty
	}

	candidates := n.Children
	if cfg.Recursive {
		candidates = n.Descendants()
	}
	if cfg.Filter != nil {
		filtered := make([]*Node, 0, len(candidates))
		for _, c := range candidates {
			if cfg.Filter(c) {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}
	if len(candidates) == 0 {
		return empty
	}

	op := cfg.Operation
	if op == "" {
		op = OpSum
	}

	if cfg.GroupBy == "" {
		return a.single(n, candidates, cfg, op)
	}
	return a.grouped(candidates, cfg, op)
}

// single treats the whole candidate set as one bucket labeled with the
// source node's title.
func (a *Aggregator) single(n *Node, candidates []*Node, cfg AggregationConfig, op AggregationOp) AggregatedData {
	values := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		values = append(values, a.targetValue(c, cfg.TargetKey))
	}
	value := reduce(values, op)

	item := AggregatedItem{
		Label:      n.Title,
		Value:      value,
		Color:      a.colorFor(n.Title, a.itemColor(candidates, cfg), 0),
		Count:      len(candidates),
		Percentage: 100,
	}
	return AggregatedData{
		Total:     value,
		Items:     []AggregatedItem{item},
		Max:       value,
		Min:       value,
		Average:   value,
		NodeCount: len(candidates),
	}
}

type bucket struct {
	label  string
	values []float64
	color  string
	count  int
}

// grouped buckets candidates by the resolved group key, reduces each bucket,
// then orders buckets by value descending with ties keeping their original
// encounter order.
func (a *Aggregator) grouped(candidates []*Node, cfg AggregationConfig, op AggregationOp) AggregatedData {
	colorKey := cfg.ColorKey
	if colorKey == "" {
		colorKey = "color"
	}

	buckets := make(map[string]*bucket)
	var order []string
	for _, c := range candidates {
		key := a.groupKey(c, cfg)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{label: key}
			buckets[key] = b
			order = append(order, key)
		}
		b.values = append(b.values, a.targetValue(c, cfg.TargetKey))
		b.count++
		if b.color == "" {
			if col, defined := a.slots.Resolve(c, colorKey, nil).(string); defined && col != "" {
				b.color = col
			}
		}
	}

	items := make([]AggregatedItem, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		items = append(items, AggregatedItem{
			Label: b.label,
			Value: reduce(b.values, op),
			Color: b.color,
			Count: b.count,
		})
	}

	// Descending by value; SliceStable keeps encounter order for ties.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})

	var total float64
	for _, it := range items {
		total += it.Value
	}
	maxVal, minVal := items[0].Value, items[0].Value
	for _, it := range items[1:] {
		if it.Value > maxVal {
			maxVal = it.Value
		}
		if it.Value < minVal {
			minVal = it.Value
		}
	}

	for i := range items {
		if total != 0 {
			items[i].Percentage = items[i].Value / total * 100
		}
		items[i].Color = a.colorFor(items[i].Label, items[i].Color, i)
	}

	return AggregatedData{
		Total:     total,
		Items:     items,
		Max:       maxVal,
		Min:       minVal,
		Average:   total / float64(len(items)),
		NodeCount: len(candidates),
	}
}

// groupKey resolves the bucket key for a candidate. Undefined or empty keys
// bucket into OtherBucket. When label_key is set it overrides the display
// label for the bucket keyed by group_by.
func (a *Aggregator) groupKey(n *Node, cfg AggregationConfig) string {
	key := cfg.GroupBy
	if cfg.LabelKey != "" {
		if v := a.slots.Resolve(n, cfg.LabelKey, nil); v != nil {
			if s := plainString(v); s != "" {
				return s
			}
		}
	}
	v := a.slots.Resolve(n, key, nil)
	if v == nil {
		return OtherBucket
	}
	s := plainString(v)
	if s == "" {
		return OtherBucket
	}
	return s
}

// targetValue reads the numeric field being aggregated. Non-numeric inputs
// coerce to 0 rather than failing the whole aggregation.
func (a *Aggregator) targetValue(n *Node, targetKey string) float64 {
	v := a.slots.Resolve(n, targetKey, nil)
	if v == nil {
		return 0
	}
	f, ok := toFloat(v)
	if !ok {
		a.logger.Debug("non-numeric aggregation value coerced to 0",
			"node_id", n.ID, "target_key", targetKey)
		return 0
	}
	return f
}

// itemColor returns the first explicit color among candidates, for the
// ungrouped single-bucket case.
func (a *Aggregator) itemColor(candidates []*Node, cfg AggregationConfig) string {
	colorKey := cfg.ColorKey
	if colorKey == "" {
		colorKey = "color"
	}
	for _, c := range candidates {
		if col, ok := a.slots.Resolve(c, colorKey, nil).(string); ok && col != "" {
			return col
		}
	}
	return ""
}

// colorFor picks the bucket color: an explicit color wins, then the first
// color ever seen for the group, then the palette cycled by bucket index.
func (a *Aggregator) colorFor(group, explicit string, index int) string {
	if explicit != "" {
		a.groupColors[group] = explicit
		return explicit
	}
	if remembered, ok := a.groupColors[group]; ok {
		return remembered
	}
	c := PaletteColor(index)
	a.groupColors[group] = c
	return c
}

func reduce(values []float64, op AggregationOp) float64 {
	if len(values) == 0 {
		return 0
	}
	switch op {
	case OpCount:
		return float64(len(values))
	case OpAverage:
		return sum(values) / float64(len(values))
	case OpMin:
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case OpMax:
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	default:
		return sum(values)
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
