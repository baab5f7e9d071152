package events

import (
	"fmt"
	"testing"

	"midway/feasibility"
)

func TestRenderableResolveErr(t *testing.T) {
	if !renderableResolveErr(feasibility.ErrNoOverlap) {
		t.Fatal("no-overlap is a planning outcome and belongs in the summary")
	}
	if !renderableResolveErr(feasibility.ErrNoParticipants) {
		t.Fatal("no-participants is a planning outcome and belongs in the summary")
	}
	if renderableResolveErr(fmt.Errorf("connection reset by peer")) {
		t.Fatal("infrastructure failures must not render as an unresolvable meeting point")
	}
	if renderableResolveErr(fmt.Errorf("flexibility lookup: %w", fmt.Errorf("timeout"))) {
		t.Fatal("wrapped store failures must not render as an unresolvable meeting point")
	}
}
