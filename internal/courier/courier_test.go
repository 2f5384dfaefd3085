package courier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkarjala/meme-courier/internal/aggregator"
	"github.com/mkarjala/meme-courier/internal/reddit"
)

// fakeBuilder returns a canned batch per category name
type fakeBuilder struct {
	batches map[string][]reddit.Meme
}

func (f *fakeBuilder) BuildBatch(_ context.Context, category aggregator.Category) []reddit.Meme {
	return f.batches[category.Name]
}

// recordingNotifier records sends and fails the categories it is told to
type recordingNotifier struct {
	failHeaders map[string]bool
	sent        []string
	notices     []string
}

func (n *recordingNotifier) Send(_ context.Context, header string, _ int, _ []reddit.Meme) error {
	if n.failHeaders[header] {
		return errors.New("simulated delivery failure")
	}
	n.sent = append(n.sent, header)
	return nil
}

func (n *recordingNotifier) SendNotice(_ context.Context, content string) error {
	n.notices = append(n.notices, content)
	return nil
}

func testCourier(builder BatchBuilder, notifier Notifier, categories []aggregator.Category) *Courier {
	return &Courier{
		builder:    builder,
		notifier:   notifier,
		categories: categories,
		delay:      time.Second,
		sleep:      func(time.Duration) {},
	}
}

func twoCategories() []aggregator.Category {
	return []aggregator.Category{
		{Name: "trending", Header: "trending header", Color: 16734003, TargetSize: 5},
		{Name: "techsupport", Header: "techsupport header", Color: 3447003, TargetSize: 5},
	}
}

func someMemes(n int) []reddit.Meme {
	memes := make([]reddit.Meme, n)
	for i := range memes {
		memes[i] = reddit.Meme{Title: "m", ImageURL: "https://i.redd.it/m.jpg", Score: "?"}
	}
	return memes
}

func TestRun_AllCategoriesDelivered(t *testing.T) {
	builder := &fakeBuilder{batches: map[string][]reddit.Meme{
		"trending":    someMemes(5),
		"techsupport": someMemes(3),
	}}
	notifier := &recordingNotifier{}

	c := testCourier(builder, notifier, twoCategories())
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(notifier.sent) != 2 {
		t.Errorf("Run() delivered %d categories, want 2", len(notifier.sent))
	}
}

func TestRun_PartialSuccessIsSuccess(t *testing.T) {
	builder := &fakeBuilder{batches: map[string][]reddit.Meme{
		"trending":    someMemes(5),
		"techsupport": someMemes(5),
	}}
	notifier := &recordingNotifier{failHeaders: map[string]bool{"techsupport header": true}}

	c := testCourier(builder, notifier, twoCategories())
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, want nil when one category succeeds", err)
	}

	if len(notifier.sent) != 1 || notifier.sent[0] != "trending header" {
		t.Errorf("Run() deliveries = %v", notifier.sent)
	}
}

func TestRun_AllDeliveriesFailed(t *testing.T) {
	builder := &fakeBuilder{batches: map[string][]reddit.Meme{
		"trending":    someMemes(5),
		"techsupport": someMemes(5),
	}}
	notifier := &recordingNotifier{failHeaders: map[string]bool{
		"trending header":    true,
		"techsupport header": true,
	}}

	c := testCourier(builder, notifier, twoCategories())
	if err := c.Run(context.Background()); !errors.Is(err, ErrNoDeliveries) {
		t.Errorf("Run() error = %v, want ErrNoDeliveries", err)
	}
}

func TestRun_EmptyBatchesSkipDelivery(t *testing.T) {
	builder := &fakeBuilder{batches: map[string][]reddit.Meme{}}
	notifier := &recordingNotifier{}

	c := testCourier(builder, notifier, twoCategories())
	if err := c.Run(context.Background()); !errors.Is(err, ErrNoDeliveries) {
		t.Errorf("Run() error = %v, want ErrNoDeliveries", err)
	}

	if len(notifier.sent) != 0 {
		t.Errorf("Run() sent %d batches, want 0", len(notifier.sent))
	}
	if len(notifier.notices) != 0 {
		t.Errorf("Run() sent %d notices with notifyEmpty off, want 0", len(notifier.notices))
	}
}

func TestRun_EmptyBatchSendsNoticeWhenConfigured(t *testing.T) {
	builder := &fakeBuilder{batches: map[string][]reddit.Meme{
		"trending": someMemes(5),
	}}
	notifier := &recordingNotifier{}

	c := testCourier(builder, notifier, twoCategories())
	c.notifyEmpty = true

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(notifier.notices) != 1 {
		t.Fatalf("Run() sent %d notices, want 1 for the empty category", len(notifier.notices))
	}
	if len(notifier.sent) != 1 {
		t.Errorf("Run() delivered %d batches, want 1", len(notifier.sent))
	}
}

func TestRun_DryRunCountsFoundBatches(t *testing.T) {
	builder := &fakeBuilder{batches: map[string][]reddit.Meme{
		"trending": someMemes(5),
	}}
	notifier := &recordingNotifier{}

	c := testCourier(builder, notifier, twoCategories())
	c.dryRun = true

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(notifier.sent) != 0 {
		t.Errorf("Run() sent %d batches during dry run, want 0", len(notifier.sent))
	}
}

func TestBuildCategoryBatch(t *testing.T) {
	builder := &fakeBuilder{batches: map[string][]reddit.Meme{
		"trending": someMemes(4),
	}}

	c := testCourier(builder, &recordingNotifier{}, twoCategories())

	batch, err := c.BuildCategoryBatch(context.Background(), "trending")
	if err != nil {
		t.Fatalf("BuildCategoryBatch() error = %v", err)
	}
	if len(batch) != 4 {
		t.Errorf("BuildCategoryBatch() returned %d memes, want 4", len(batch))
	}

	if _, err := c.BuildCategoryBatch(context.Background(), "nonexistent"); err == nil {
		t.Error("BuildCategoryBatch() should fail for an unknown category")
	}
}
