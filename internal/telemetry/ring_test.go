package telemetry

import "testing"

func TestRecorderStaysBounded(t *testing.T) {
	r := NewRecorder(4, 0)
	for i := 0; i < 10; i++ {
		r.Record(FrameSnapshot{BodyCount: i})
	}

	if r.Len() != 4 {
		t.Errorf("ring holds %d frames, want 4", r.Len())
	}
	if r.Count() != 10 {
		t.Errorf("total count %d, want 10", r.Count())
	}
}

func TestRecorderFramesOldestFirst(t *testing.T) {
	r := NewRecorder(3, 0)
	for i := 0; i < 5; i++ {
		r.Record(FrameSnapshot{BodyCount: i})
	}

	frames := r.Frames()
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	for i, f := range frames {
		if f.BodyCount != i+2 {
			t.Errorf("frame %d has body count %d, want %d", i, f.BodyCount, i+2)
		}
	}
}

func TestRecorderPartialFill(t *testing.T) {
	r := NewRecorder(8, 0)
	r.Record(FrameSnapshot{BodyCount: 1})
	r.Record(FrameSnapshot{BodyCount: 2})

	if r.Len() != 2 {
		t.Errorf("ring holds %d frames, want 2", r.Len())
	}
	frames := r.Frames()
	if len(frames) != 2 || frames[0].BodyCount != 1 || frames[1].BodyCount != 2 {
		t.Errorf("frames %v, want body counts 1 then 2", frames)
	}
}

func TestRecorderMinimumSize(t *testing.T) {
	r := NewRecorder(0, 0)
	r.Record(FrameSnapshot{})
	if r.Len() != 1 {
		t.Errorf("ring holds %d frames, want 1", r.Len())
	}
}
