package learn

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestUserDictRoundTrip(t *testing.T) {
	m, clock := newTestModel()
	for word, n := range map[string]int{"中": 4, "文": 2, "輸入": 3, "法": 1} {
		for i := 0; i < n; i++ {
			m.Learn(word)
		}
	}

	var buf bytes.Buffer
	written, err := WriteUserDict(&buf, m, 0)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if written != 4 {
		t.Fatalf("expected 4 entries written, got %d", written)
	}
	if !strings.Contains(buf.String(), "中\t\t4\tpermanent\n") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	clock.advance(30 * 24 * time.Hour)
	loaded := NewModel(WithClock(clock.now))
	n, err := ReadUserDict(&buf, loaded)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 entries read, got %d", n)
	}

	testCases := []struct {
		word      string
		frequency int
		permanent bool
	}{
		{"中", 4, true},
		{"文", 2, false},
		{"輸入", 3, true},
		{"法", 1, false},
	}
	for _, tc := range testCases {
		t.Run(tc.word, func(t *testing.T) {
			info, ok := loaded.Info(tc.word)
			if !ok {
				t.Fatalf("%s missing after reload", tc.word)
			}
			if info.Frequency != tc.frequency || info.Permanent != tc.permanent {
				t.Errorf("got %d/%v, want %d/%v", info.Frequency, info.Permanent, tc.frequency, tc.permanent)
			}
			if !info.LastUsed.Equal(clock.t) {
				t.Errorf("LastUsed should reset to load time, got %v", info.LastUsed)
			}
			if info.TempCount != max(3, tc.frequency) {
				t.Errorf("TempCount = %d", info.TempCount)
			}
		})
	}
}

func TestUserDictRoundTripCustomThreshold(t *testing.T) {
	p := DefaultPolicy()
	p.PromotionThreshold = 5
	m := NewModel(WithPolicy(p), WithClock(func() time.Time { return epoch }))
	for word, n := range map[string]int{"中": 3, "文": 5} {
		for i := 0; i < n; i++ {
			m.Learn(word)
		}
	}

	var buf bytes.Buffer
	if _, err := WriteUserDict(&buf, m, 0); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded := NewModel(WithPolicy(p), WithClock(func() time.Time { return epoch }))
	if _, err := ReadUserDict(&buf, loaded); err != nil {
		t.Fatalf("read: %v", err)
	}

	for _, word := range []string{"中", "文"} {
		saved, _ := m.Info(word)
		info, ok := loaded.Info(word)
		if !ok {
			t.Fatalf("%s missing after reload", word)
		}
		if info.Permanent != saved.Permanent {
			t.Errorf("%s: permanent = %v after reload, was %v", word, info.Permanent, saved.Permanent)
		}
	}
	if info, _ := loaded.Info("中"); info.TempCount != 5 {
		t.Errorf("TempCount = %d, want the promotion threshold", info.TempCount)
	}
}

func TestWriteUserDictKeepsTopEntries(t *testing.T) {
	m, clock := newTestModel()
	m.Learn("old")
	m.Learn("old")
	m.Learn("old")
	clock.advance(100 * 24 * time.Hour)
	m.Learn("new")
	m.Learn("new")

	var buf bytes.Buffer
	if _, err := WriteUserDict(&buf, m, 1); err != nil {
		t.Fatalf("write: %v", err)
	}
	// old scores 3*0.2, new scores 2*1.0
	if !strings.Contains(buf.String(), "new\t\t2\ttemp") || strings.Contains(buf.String(), "old") {
		t.Errorf("expected only the recent word:\n%s", buf.String())
	}
}

func TestWriteUserDictCap(t *testing.T) {
	m, _ := newTestModel()
	for i := 0; i < DefaultMaxUserEntries+50; i++ {
		m.Learn(fmt.Sprintf("w%04d", i))
	}
	var buf bytes.Buffer
	n, err := WriteUserDict(&buf, m, 0)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != DefaultMaxUserEntries {
		t.Errorf("expected %d entries, got %d", DefaultMaxUserEntries, n)
	}
}

func TestReadUserDictLenient(t *testing.T) {
	input := "\uFEFF# header\n" +
		"甲\t\tabc\ttemp\n" +
		"乙\t\t7\tpermanent\r\n" +
		"丙\n" +
		"\n" +
		"丁\t\n"
	m, _ := newTestModel()
	m.Learn("stale")
	n, err := ReadUserDict(strings.NewReader(input), m)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 entries, got %d", n)
	}
	if info, _ := m.Info("甲"); info.Frequency != 1 || info.Permanent {
		t.Errorf("unparsable frequency should default to 1, got %+v", info)
	}
	if info, _ := m.Info("乙"); info.Frequency != 7 || !info.Permanent {
		t.Errorf("乙 = %+v", info)
	}
	if _, ok := m.Info("丙"); ok {
		t.Errorf("single-field lines should be skipped")
	}
	if _, ok := m.Info("stale"); ok {
		t.Errorf("reading should replace previous words")
	}
}
