package cli

import (
	"fmt"

	"github.com/avandeursen/mosaic/internal/engine"
)

// newBadgeRegistry wires the per-variant renderers used for tree rows.
// Each renderer returns the right-aligned badge for a node; the fallback
// shows nothing.
func newBadgeRegistry(slots *engine.SlotResolver) *engine.Registry {
	reg := engine.NewRegistry(engine.RendererFunc(func(n *engine.Node) string {
		return ""
	}))

	register := func(variant string, fn func(n *engine.Node) string) {
		if err := reg.Register(variant, engine.RendererFunc(fn)); err != nil {
			panic(fmt.Sprintf("wiring renderer: %v", err))
		}
	}

	register("expense_row", func(n *engine.Node) string {
		v := slots.Resolve(n, "amount", nil)
		if v == nil {
			return ""
		}
		return slots.Format(v, engine.FormatCurrency)
	})
	register("task", func(n *engine.Node) string {
		return slots.ResolveFormatted(n, "due", "", engine.FormatDate)
	})
	register("event", func(n *engine.Node) string {
		return slots.ResolveFormatted(n, engine.MetaScheduledAt, "", engine.FormatDate)
	})
	register("metric", func(n *engine.Node) string {
		v := slots.Resolve(n, "value", nil)
		if v == nil {
			return ""
		}
		return slots.Format(v, engine.FormatNumber)
	})

	return reg
}
