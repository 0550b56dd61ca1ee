package runtime

import (
	"context"
	"testing"
	"time"
)

func TestEngineSeqSlots(t *testing.T) {
	e, err := NewBuilder(newStubPipeline("m"), DefaultScheduler(2), false, "").
		Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer e.Close()

	rel1 := e.AcquireSeq()
	rel2 := e.AcquireSeq()

	acquired := make(chan struct{})
	go func() {
		rel := e.AcquireSeq()
		close(acquired)
		rel()
	}()
	select {
	case <-acquired:
		t.Fatalf("third acquire must block at capacity 2")
	case <-time.After(20 * time.Millisecond):
	}
	rel1()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("acquire did not proceed after a release")
	}
	rel2()
}

func TestEngineReleaseIdempotent(t *testing.T) {
	e, err := NewBuilder(newStubPipeline("m"), DefaultScheduler(1), false, "").
		Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer e.Close()
	rel := e.AcquireSeq()
	rel()
	rel() // must not free a slot twice
	rel2 := e.AcquireSeq()
	rel2()
}

func TestEngineCloseIdempotent(t *testing.T) {
	p := newStubPipeline("m")
	e, err := NewBuilder(p, DefaultScheduler(1), false, "").Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if p.closed != 1 {
		t.Fatalf("pipeline closed %d times", p.closed)
	}
}

func TestEngineMetadataPassthrough(t *testing.T) {
	p := newStubPipeline("org/model")
	e, err := NewBuilder(p, DefaultScheduler(1), false, "").Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer e.Close()
	if e.ModelID() != "org/model" {
		t.Fatalf("model id: %q", e.ModelID())
	}
	if e.Metadata().MaxSeqLen != 2048 {
		t.Fatalf("metadata: %+v", e.Metadata())
	}
	if e.Uptime() < 0 {
		t.Fatalf("uptime went backwards")
	}
}
