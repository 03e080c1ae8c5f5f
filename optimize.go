package main

// Optimize returns a sequence equivalent to seq with runs of adjacent
// increments and decrements folded into single OpAdd nodes, and runs of
// adjacent cursor moves folded into single OpMove nodes. Runs whose net effect
// is zero are dropped. Loop bodies are optimized recursively, but no run
// extends across a loop boundary.
//
// The result is freshly allocated; seq is not modified. Optimize is
// idempotent: optimizing an optimized sequence returns an equal one.
func Optimize(seq Seq) Seq {
	if len(seq) == 0 {
		return nil
	}

	// dropping a zero-effect run of moves can make two value runs adjacent
	// (and vice versa), so fold until nothing more disappears
	seq = valueFold.fold(seq)
	for {
		n := len(seq)
		seq = valueFold.fold(pointerFold.fold(seq))
		if len(seq) == n {
			break
		}
	}

	for i, node := range seq {
		if node.Op == OpLoop {
			seq[i].Body = Optimize(node.Body)
		}
	}

	if len(seq) == 0 {
		return nil
	}
	return seq
}

// foldClass describes a pair of opposite unit instructions, and the
// adjustment node that replaces runs of them.
type foldClass struct {
	up, down Op
	adjust   Op
}

var (
	valueFold   = foldClass{OpInc, OpDec, OpAdd}
	pointerFold = foldClass{OpRight, OpLeft, OpMove}
)

func (fc foldClass) delta(node Node) (int, bool) {
	switch node.Op {
	case fc.up:
		return 1, true
	case fc.down:
		return -1, true
	case fc.adjust:
		return node.Amount, true
	}
	return 0, false
}

// fold returns a new sequence with every maximal run of fc's nodes replaced
// by one adjustment holding the run's net amount, or by nothing if that is
// zero. All other nodes pass through unchanged.
func (fc foldClass) fold(seq Seq) Seq {
	out := make(Seq, 0, len(seq))
	amount, inRun := 0, false
	flush := func() {
		if inRun && amount != 0 {
			out = append(out, Node{Op: fc.adjust, Amount: amount})
		}
		amount, inRun = 0, false
	}
	for _, node := range seq {
		if d, ok := fc.delta(node); ok {
			amount += d
			inRun = true
			continue
		}
		flush()
		out = append(out, node)
	}
	flush()
	return out
}
