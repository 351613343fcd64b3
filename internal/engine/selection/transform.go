package selection

import "github.com/dshills/quill/internal/engine/buffer"

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// Transform maps a selection through a batch of edits given in pre-edit
// coordinates. Both endpoints use bias; flags are preserved.
func Transform(sel Selection, edits []Edit, bias buffer.Bias) Selection {
	return TransformEnds(sel, edits, bias, bias)
}

// TransformEnds maps a selection through a batch of edits with separate
// biases for the start and end positions.
func TransformEnds(sel Selection, edits []Edit, startBias, endBias buffer.Bias) Selection {
	sel.Start = buffer.MapPosition(sel.Start, edits, startBias)
	sel.End = buffer.MapPosition(sel.End, edits, endBias)
	return sel.Ordered()
}

// TransformAll maps every selection through a batch of edits.
func TransformAll(sels []Selection, edits []Edit, bias buffer.Bias) []Selection {
	out := make([]Selection, len(sels))
	for i, sel := range sels {
		out[i] = Transform(sel, edits, bias)
	}
	return out
}
