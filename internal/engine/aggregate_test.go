package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(newTestResolver(), nil)
}

func expenseNode(title, category string, amount any) *Node {
	return &Node{
		ID:    title,
		Title: title,
		Metadata: map[string]any{
			"category": category,
			"amount":   amount,
		},
	}
}

func expenseTree() *Node {
	return &Node{
		ID:       "budget",
		Title:    "Budget",
		Metadata: map[string]any{},
		Children: []*Node{
			expenseNode("lunch", "Food", 10),
			expenseNode("snacks", "Food", 5),
			expenseNode("fillup", "Gas", 20),
		},
	}
}

func TestAggregate_GroupedSum(t *testing.T) {
	agg := newTestAggregator()

	data := agg.Aggregate(expenseTree(), AggregationConfig{
		TargetKey: "amount",
		GroupBy:   "category",
		Operation: OpSum,
	})

	assert.Equal(t, 35.0, data.Total)
	assert.Equal(t, 3, data.NodeCount)
	assert.False(t, data.IsEmpty)
	require.Len(t, data.Items, 2)

	assert.Equal(t, "Gas", data.Items[0].Label)
	assert.Equal(t, 20.0, data.Items[0].Value)
	assert.InDelta(t, 57.14, data.Items[0].Percentage, 0.01)

	assert.Equal(t, "Food", data.Items[1].Label)
	assert.Equal(t, 15.0, data.Items[1].Value)
	assert.Equal(t, 2, data.Items[1].Count)
	assert.InDelta(t, 42.86, data.Items[1].Percentage, 0.01)

	assert.Equal(t, 20.0, data.Max)
	assert.Equal(t, 15.0, data.Min)
	assert.Equal(t, 17.5, data.Average)
}

func TestAggregate_EmptyContract(t *testing.T) {
	agg := newTestAggregator()
	leaf := &Node{ID: "leaf", Title: "Leaf", Metadata: map[string]any{}}

	data := agg.Aggregate(leaf, AggregationConfig{TargetKey: "amount", GroupBy: "category"})

	assert.True(t, data.IsEmpty)
	assert.Zero(t, data.Total)
	assert.Zero(t, data.Max)
	assert.Zero(t, data.Min)
	assert.Zero(t, data.Average)
	assert.NotNil(t, data.Items)
	assert.Empty(t, data.Items)
}

func TestAggregate_NilNodeIsEmpty(t *testing.T) {
	agg := newTestAggregator()
	assert.True(t, agg.Aggregate(nil, AggregationConfig{TargetKey: "amount"}).IsEmpty)
}

func TestAggregate_NoGroupBySingleBucket(t *testing.T) {
	agg := newTestAggregator()

	data := agg.Aggregate(expenseTree(), AggregationConfig{TargetKey: "amount"})

	require.Len(t, data.Items, 1)
	assert.Equal(t, "Budget", data.Items[0].Label, "bucket labeled with the source node title")
	assert.Equal(t, 35.0, data.Items[0].Value)
	assert.Equal(t, 3, data.Items[0].Count)
	assert.Equal(t, 100.0, data.Items[0].Percentage)
}

func TestAggregate_TiesKeepEncounterOrder(t *testing.T) {
	agg := newTestAggregator()
	tree := &Node{
		ID: "t", Title: "T", Metadata: map[string]any{},
		Children: []*Node{
			expenseNode("one", "Zebra", 10),
			expenseNode("two", "Apple", 10),
		},
	}

	data := agg.Aggregate(tree, AggregationConfig{TargetKey: "amount", GroupBy: "category"})

	require.Len(t, data.Items, 2)
	assert.Equal(t, "Zebra", data.Items[0].Label, "ties keep encounter order, not label order")
	assert.Equal(t, "Apple", data.Items[1].Label)
}

func TestAggregate_UndefinedGroupKeyBucketsIntoOther(t *testing.T) {
	agg := newTestAggregator()
	tree := &Node{
		ID: "t", Title: "T", Metadata: map[string]any{},
		Children: []*Node{
			expenseNode("a", "Food", 5),
			{ID: "b", Title: "b", Metadata: map[string]any{"amount": 7}},
			{ID: "c", Title: "c", Metadata: map[string]any{"category": "", "amount": 1}},
		},
	}

	data := agg.Aggregate(tree, AggregationConfig{TargetKey: "amount", GroupBy: "category"})

	require.Len(t, data.Items, 2)
	assert.Equal(t, OtherBucket, data.Items[0].Label)
	assert.Equal(t, 8.0, data.Items[0].Value)
	assert.Equal(t, 2, data.Items[0].Count)
}

func TestAggregate_NonNumericCoercesToZero(t *testing.T) {
	agg := newTestAggregator()
	tree := &Node{
		ID: "t", Title: "T", Metadata: map[string]any{},
		Children: []*Node{
			expenseNode("a", "Food", "not a number"),
			expenseNode("b", "Food", 5),
		},
	}

	data := agg.Aggregate(tree, AggregationConfig{TargetKey: "amount", GroupBy: "category"})
	assert.Equal(t, 5.0, data.Total)
}

func TestAggregate_Recursive(t *testing.T) {
	agg := newTestAggregator()
	tree := expenseTree()
	tree.Children[0].Children = []*Node{expenseNode("tip", "Food", 2)}

	flat := agg.Aggregate(tree, AggregationConfig{TargetKey: "amount", GroupBy: "category"})
	deep := agg.Aggregate(tree, AggregationConfig{TargetKey: "amount", GroupBy: "category", Recursive: true})

	assert.Equal(t, 35.0, flat.Total)
	assert.Equal(t, 37.0, deep.Total)
	assert.Equal(t, 4, deep.NodeCount)
}

func TestAggregate_Filter(t *testing.T) {
	agg := newTestAggregator()

	data := agg.Aggregate(expenseTree(), AggregationConfig{
		TargetKey: "amount",
		GroupBy:   "category",
		Filter: func(n *Node) bool {
			return n.Metadata["category"] == "Food"
		},
	})

	assert.Equal(t, 15.0, data.Total)
	assert.Equal(t, 2, data.NodeCount)
}

func TestAggregate_Operations(t *testing.T) {
	agg := newTestAggregator()
	tree := expenseTree()

	cases := []struct {
		op   AggregationOp
		food float64
	}{
		{OpSum, 15},
		{OpCount, 2},
		{OpAverage, 7.5},
		{OpMin, 5},
		{OpMax, 10},
	}
	for _, tc := range cases {
		t.Run(string(tc.op), func(t *testing.T) {
			data := agg.Aggregate(tree, AggregationConfig{
				TargetKey: "amount",
				GroupBy:   "category",
				Operation: tc.op,
			})
			var food *AggregatedItem
			for i := range data.Items {
				if data.Items[i].Label == "Food" {
					food = &data.Items[i]
				}
			}
			require.NotNil(t, food)
			assert.Equal(t, tc.food, food.Value)
		})
	}
}

func TestAggregate_ExplicitColorWins(t *testing.T) {
	agg := newTestAggregator()
	tree := &Node{
		ID: "t", Title: "T", Metadata: map[string]any{},
		Children: []*Node{
			{ID: "a", Title: "a", Metadata: map[string]any{"category": "Food", "amount": 5, "color": "#123456"}},
			expenseNode("b", "Gas", 9),
		},
	}

	data := agg.Aggregate(tree, AggregationConfig{TargetKey: "amount", GroupBy: "category"})
	for _, it := range data.Items {
		if it.Label == "Food" {
			assert.Equal(t, "#123456", it.Color)
		}
	}
}

func TestAggregate_ColorsStableAcrossRuns(t *testing.T) {
	agg := newTestAggregator()
	cfg := AggregationConfig{TargetKey: "amount", GroupBy: "category"}

	first := agg.Aggregate(expenseTree(), cfg)

	// Same groups, new values, different ordering: colors must not move.
	reshuffled := &Node{
		ID: "budget", Title: "Budget", Metadata: map[string]any{},
		Children: []*Node{
			expenseNode("lunch", "Food", 50),
			expenseNode("fillup", "Gas", 1),
		},
	}
	second := agg.Aggregate(reshuffled, cfg)

	colors := func(d AggregatedData) map[string]string {
		out := map[string]string{}
		for _, it := range d.Items {
			out[it.Label] = it.Color
		}
		return out
	}
	assert.Equal(t, colors(first), colors(second))
}

func TestAggregate_PaletteCyclesByBucketIndex(t *testing.T) {
	agg := newTestAggregator()

	data := agg.Aggregate(expenseTree(), AggregationConfig{TargetKey: "amount", GroupBy: "category"})
	require.Len(t, data.Items, 2)
	assert.Equal(t, PaletteColor(0), data.Items[0].Color)
	assert.Equal(t, PaletteColor(1), data.Items[1].Color)
}

func TestAggregateFrom_SourceIndirection(t *testing.T) {
	agg := newTestAggregator()
	widget := &Node{ID: "widget", Title: "Chart", Metadata: map[string]any{}}
	budget := expenseTree()
	index := map[string]*Node{"budget": budget}
	lookup := func(id string) *Node { return index[id] }

	data := agg.AggregateFrom(widget, AggregationConfig{
		TargetKey: "amount",
		GroupBy:   "category",
		SourceID:  "budget",
	}, lookup)

	assert.Equal(t, 35.0, data.Total)
}

func TestAggregateFrom_MissingSourceDegradesToCallingNode(t *testing.T) {
	agg := newTestAggregator()
	caller := expenseTree()
	lookup := func(id string) *Node { return nil }

	data := agg.AggregateFrom(caller, AggregationConfig{
		TargetKey: "amount",
		GroupBy:   "category",
		SourceID:  "ghost",
	}, lookup)

	// Non-fatal degradation: the caller's own children are aggregated.
	assert.Equal(t, 35.0, data.Total)
	assert.False(t, data.IsEmpty)
}
