package learn

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time           { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestModel() (*Model, *fakeClock) {
	clock := &fakeClock{t: epoch}
	return NewModel(WithClock(clock.now)), clock
}

func TestPromotion(t *testing.T) {
	m, _ := newTestModel()

	testCases := []struct {
		frequency   int
		permanent   bool
		description string
	}{
		{1, false, "first selection creates a temporary word"},
		{2, false, "second selection stays temporary"},
		{3, true, "third selection promotes"},
		{4, true, "fourth selection keeps permanence"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if !m.Learn("中") {
				t.Fatalf("Learn should report a change")
			}
			info, ok := m.Info("中")
			if !ok {
				t.Fatalf("word not learned")
			}
			if info.Frequency != tc.frequency || info.Permanent != tc.permanent {
				t.Errorf("got frequency=%d permanent=%v, want %d/%v",
					info.Frequency, info.Permanent, tc.frequency, tc.permanent)
			}
		})
	}
}

func TestLearnUpdatesRecency(t *testing.T) {
	m, clock := newTestModel()
	m.Learn("中")
	clock.advance(48 * time.Hour)
	m.Learn("中")

	info, _ := m.Info("中")
	if !info.LastUsed.Equal(clock.t) {
		t.Errorf("LastUsed = %v, want %v", info.LastUsed, clock.t)
	}
}

func TestLearnEmptyWord(t *testing.T) {
	m, _ := newTestModel()
	if m.Learn("") {
		t.Errorf("empty word should not change state")
	}
	if m.Dirty() || m.Len() != 0 {
		t.Errorf("empty word should leave the model untouched")
	}
}

func TestContextFollowers(t *testing.T) {
	m, _ := newTestModel()
	m.Learn("我")
	m.Learn("們")
	m.Learn("我")
	m.Learn("我")
	m.Learn("的")

	if got := m.Followers("我"); !reflect.DeepEqual(got, []string{"們", "的"}) {
		t.Errorf("Followers(我) = %v", got)
	}
	if got := m.Followers("們"); !reflect.DeepEqual(got, []string{"我"}) {
		t.Errorf("Followers(們) = %v", got)
	}
	if !m.IsFollower("我", "的") || m.IsFollower("的", "我") {
		t.Errorf("IsFollower mismatch")
	}
	if m.LastSelected() != "的" {
		t.Errorf("LastSelected = %q", m.LastSelected())
	}
}

func TestContextEvictsOldest(t *testing.T) {
	m, _ := newTestModel()
	var want []string
	for i := 0; i < 11; i++ {
		next := fmt.Sprintf("w%d", i)
		m.Learn("x")
		m.Learn(next)
		want = append(want, next)
	}

	got := m.Followers("x")
	if len(got) != 10 {
		t.Fatalf("expected 10 followers, got %d", len(got))
	}
	if !reflect.DeepEqual(got, want[1:]) {
		t.Errorf("Followers(x) = %v, want %v", got, want[1:])
	}
}

func TestTimeWeight(t *testing.T) {
	p := DefaultPolicy()

	testCases := []struct {
		age      time.Duration
		expected float64
	}{
		{0, 1.0},
		{24 * time.Hour, 1.0},
		{36 * time.Hour, 0.8},
		{3 * 24 * time.Hour, 0.8},
		{7 * 24 * time.Hour, 0.8},
		{7*24*time.Hour + 12*time.Hour, 0.6},
		{8 * 24 * time.Hour, 0.6},
		{30*24*time.Hour + time.Minute, 0.4},
		{45 * 24 * time.Hour, 0.4},
		{90*24*time.Hour + 12*time.Hour, 0.2},
		{95 * 24 * time.Hour, 0.2},
	}
	for _, tc := range testCases {
		t.Run(tc.age.String(), func(t *testing.T) {
			if got := p.TimeWeight(epoch.Add(-tc.age), epoch); got != tc.expected {
				t.Errorf("TimeWeight(%v) = %v, want %v", tc.age, got, tc.expected)
			}
		})
	}
}

func TestDirtyFlag(t *testing.T) {
	m, _ := newTestModel()
	m.Learn("中")
	if !m.Dirty() {
		t.Fatalf("model should be dirty after learning")
	}
	m.MarkClean()
	if m.Dirty() {
		t.Errorf("MarkClean should clear the flag")
	}
}

func TestTopSingles(t *testing.T) {
	m, _ := newTestModel()
	for word, n := range map[string]int{"的": 5, "是": 3, "我們": 9, "了": 3, "不": 1} {
		for i := 0; i < n; i++ {
			m.Learn(word)
		}
	}

	got := m.TopSingles(3, func(w string) bool { return w == "是" })
	if !reflect.DeepEqual(got, []string{"的", "了", "不"}) {
		t.Errorf("TopSingles = %v", got)
	}
}

func TestSnapshotRestore(t *testing.T) {
	m, _ := newTestModel()
	m.Learn("我")
	m.Learn("們")
	m.Learn("我")

	s := m.Snapshot()
	restored, _ := newTestModel()
	restored.Restore(s)

	if !reflect.DeepEqual(restored.Snapshot(), s) {
		t.Errorf("restore mismatch:\n got %+v\nwant %+v", restored.Snapshot(), s)
	}
	if restored.Dirty() {
		t.Errorf("restored model should be clean")
	}
}

func TestCustomPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.PromotionThreshold = 2
	p.ContextCapacity = 2
	m := NewModel(WithPolicy(p), WithClock(func() time.Time { return epoch }))

	m.Learn("a")
	m.Learn("a")
	if info, _ := m.Info("a"); !info.Permanent {
		t.Errorf("threshold 2 should promote on the second selection")
	}
	for _, w := range []string{"b", "a", "c", "a", "d"} {
		m.Learn(w)
	}
	if got := m.Followers("a"); !reflect.DeepEqual(got, []string{"c", "d"}) {
		t.Errorf("Followers(a) = %v", got)
	}
}
