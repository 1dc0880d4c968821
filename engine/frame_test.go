package engine

import (
	"testing"

	"github.com/kumaryash6352/csvpshmem-viewer/model"
)

func frameProfile() *model.ProfileData {
	events := []model.Event{
		{SourcePE: 0, Raw: model.RawEvent{Time: 0.0, Function: "init", Duration: 0.1, TargetPE: -1}},
		{SourcePE: 1, Raw: model.RawEvent{Time: 0.5, Function: "spin", Duration: 0, TargetPE: -1}},
		{SourcePE: 0, Raw: model.RawEvent{
			Time: 1.0, Function: "send", Duration: 0.5, TargetPE: 1,
			Bytes:       model.ByteAccounting{Kind: model.AccountingDirected, Sent: 2000, Received: 500},
			Symboltrace: "main | put_loop ||  flush ",
		}},
		{SourcePE: 2, Raw: model.RawEvent{Time: 9.0, Function: "fini", Duration: 1.0, TargetPE: -1}},
	}
	return &model.ProfileData{
		Events:    events,
		PECount:   3,
		Hostnames: map[uint32]string{0: "n0", 1: "n1", 2: "n2"},
		MinTime:   0,
		MaxTime:   10,
	}
}

func frameViewport() *Viewport {
	vp := NewViewport(0, 10)
	vp.SetContentExtent(0, 1000)
	return vp
}

func TestBuildFrameBoxes(t *testing.T) {
	data := frameProfile()
	vp := frameViewport()
	vp.CursorTime = 1.0

	frame := BuildFrame(data, vp, 0, false)

	if len(frame.Boxes) != 4 {
		t.Fatalf("got %d boxes, want 4", len(frame.Boxes))
	}
	for _, box := range frame.Boxes {
		if box.X1 <= box.X0 {
			t.Errorf("box for %q has no width: [%v,%v]", box.Event.Raw.Function, box.X0, box.X1)
		}
		if box.Color != FunctionColor(box.Event.Raw.Function) {
			t.Errorf("box color mismatch for %q", box.Event.Raw.Function)
		}
		if box.Row != box.Event.SourcePE {
			t.Errorf("box row %d, want %d", box.Row, box.Event.SourcePE)
		}
	}
	if !frame.CursorVisible {
		t.Error("cursor inside range should be visible")
	}
	if frame.CursorX != 100 { // 1.0s of [0,10] over 1000 px
		t.Errorf("cursor x = %v, want 100", frame.CursorX)
	}
}

func TestBuildFrameCullsOutOfRange(t *testing.T) {
	data := frameProfile()
	vp := frameViewport()
	vp.Start, vp.End = 8.0, 10.0

	frame := BuildFrame(data, vp, 0, false)
	if len(frame.Boxes) != 1 || frame.Boxes[0].Event.Raw.Function != "fini" {
		t.Fatalf("got %d boxes, want only fini", len(frame.Boxes))
	}
}

func TestBuildFrameHoverWindow(t *testing.T) {
	data := frameProfile()
	vp := frameViewport()
	vp.WindowSize = 1.0
	vp.SetHover(100) // t = 1.0

	frame := BuildFrame(data, vp, 0, false)
	if !frame.Hovering {
		t.Fatal("frame lost hover state")
	}
	if frame.HoverX0 != 50 || frame.HoverX1 != 150 {
		t.Errorf("hover span [%v,%v], want [50,150]", frame.HoverX0, frame.HoverX1)
	}
	// Window centers on the hover time, so the send at t=1.0 aggregates.
	if len(frame.Edges) == 0 {
		t.Fatal("no edges for hovered window")
	}
}

func TestBuildFrameEdgesAndMuting(t *testing.T) {
	data := frameProfile()
	vp := frameViewport()
	vp.CursorTime = 1.0
	vp.WindowSize = 0.5

	frame := BuildFrame(data, vp, 2, true)
	if len(frame.Edges) != 2 {
		t.Fatalf("got %d edges, want send + receive", len(frame.Edges))
	}
	for _, e := range frame.Edges {
		if !e.Muted {
			t.Errorf("edge %d->%d should be muted with focus on PE 2", e.Src, e.Dst)
		}
	}

	frame = BuildFrame(data, vp, 0, true)
	for _, e := range frame.Edges {
		if e.Muted {
			t.Errorf("edge %d->%d should not be muted with focus on PE 0", e.Src, e.Dst)
		}
	}
}

func TestBuildFrameNodes(t *testing.T) {
	data := frameProfile()
	vp := frameViewport()
	vp.CursorTime = 1.0
	vp.WindowSize = 0.5

	frame := BuildFrame(data, vp, 0, true)
	if len(frame.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(frame.Nodes))
	}
	if !frame.Nodes[0].Focused {
		t.Error("node 0 should be focused")
	}
	if !frame.Nodes[1].Adjacent {
		t.Error("node 1 communicates with the focus and should be adjacent")
	}
	if frame.Nodes[2].Adjacent || frame.Nodes[2].Focused {
		t.Error("node 2 is idle and should be neither focused nor adjacent")
	}
	if frame.Nodes[1].Hostname != "n1" {
		t.Errorf("node hostname = %q, want n1", frame.Nodes[1].Hostname)
	}
}

func TestBuildTooltip(t *testing.T) {
	data := frameProfile()
	send := &data.Events[2]

	tt := BuildTooltip(data, send)
	if tt.Function != "send" || tt.PE != 0 || tt.Hostname != "n0" {
		t.Errorf("tooltip identity wrong: %+v", tt)
	}
	if tt.TotalBytes != 2500 || tt.TXBytes != 2000 || tt.RXBytes != 500 {
		t.Errorf("tooltip bytes wrong: %+v", tt)
	}
	// 2500 bytes over 0.5s = 5000 B/s = 5e-6 GB/s.
	if diff := tt.GBps - 5e-6; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("GBps = %v, want 5e-6", tt.GBps)
	}
	// Blank frames are dropped, the rest trimmed.
	want := []string{"main", "put_loop", "flush"}
	if len(tt.Frames) != len(want) {
		t.Fatalf("frames = %v, want %v", tt.Frames, want)
	}
	for i := range want {
		if tt.Frames[i] != want[i] {
			t.Errorf("frame %d = %q, want %q", i, tt.Frames[i], want[i])
		}
	}
}

func TestBuildTooltipZeroDuration(t *testing.T) {
	data := frameProfile()
	spin := &data.Events[1]
	tt := BuildTooltip(data, spin)
	if tt.GBps != 0 {
		t.Errorf("GBps = %v, want 0 for zero-duration event", tt.GBps)
	}
	if len(tt.Frames) != 0 {
		t.Errorf("frames = %v, want none", tt.Frames)
	}
}
