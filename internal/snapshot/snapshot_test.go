package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avoron/planpoker/internal/domain"
)

func testTree() []*domain.Feature {
	f, _ := domain.NewFeature("f1", "Checkout")
	s, _ := domain.NewStory("s1", "Cart", "http://x")
	s.FinalScores = domain.FinalScores{BE: 3, FE: 2, QA: 1, US: 6}
	f.Stories = append(f.Stories, s)
	return []*domain.Feature{f}
}

func TestWriterDumpsFeaturesTree(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Offer("R1", testTree())

	path := filepath.Join(dir, "R1.json")
	deadline := time.Now().Add(2 * time.Second)
	var data []byte
	for time.Now().Before(deadline) {
		var err error
		if data, err = os.ReadFile(path); err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if data == nil {
		t.Fatalf("snapshot %s never appeared", path)
	}

	var tree []*domain.Feature
	if err := json.Unmarshal(data, &tree); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if len(tree) != 1 || len(tree[0].Stories) != 1 {
		t.Fatalf("snapshot tree = %+v, want 1 feature with 1 story", tree)
	}
	if got := tree[0].Stories[0].FinalScores.US; got != 6 {
		t.Errorf("snapshot US = %v, want 6", got)
	}
}

func TestOfferNeverBlocks(t *testing.T) {
	w := NewWriter(t.TempDir()) // no worker running

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			w.Offer("R1", nil)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Offer blocked with a full queue")
	}
}
