package utils

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestSuggestionFilter(t *testing.T) {
	f := NewSuggestionFilter("中")
	testCases := []struct {
		word        string
		include     bool
		description string
	}{
		{"中", false, "seeded word is filtered"},
		{"国", true, "new word passes"},
		{"国", false, "second occurrence is filtered"},
		{"中国", true, "longer word is distinct"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := f.ShouldInclude(tc.word); got != tc.include {
				t.Errorf("ShouldInclude(%q) = %v", tc.word, got)
			}
		})
	}
	if f.Len() != 3 || !f.Contains("中国") || f.Contains("文") {
		t.Errorf("filter state wrong, len %d", f.Len())
	}
}

func TestFormatWithCommas(t *testing.T) {
	testCases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}
	for _, tc := range testCases {
		if got := FormatWithCommas(tc.n); got != tc.want {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestCreateRankList(t *testing.T) {
	if got := CreateRankList(3); !reflect.DeepEqual(got, []uint16{1, 2, 3}) {
		t.Errorf("CreateRankList(3) = %v", got)
	}
	if got := CreateRankList(0); len(got) != 0 {
		t.Errorf("CreateRankList(0) = %v", got)
	}
}

func TestExtractSlices(t *testing.T) {
	data := map[string]any{
		"days":    []any{int64(1), int64(7)},
		"weights": []any{1.0, int64(1)},
		"mixed":   []any{int64(1), "x"},
		"floor":   int64(1),
	}
	if got, ok := ExtractIntSlice(data, "days"); !ok || !reflect.DeepEqual(got, []int{1, 7}) {
		t.Errorf("ExtractIntSlice = %v, %v", got, ok)
	}
	if got, ok := ExtractFloatSlice(data, "weights"); !ok || !reflect.DeepEqual(got, []float64{1, 1}) {
		t.Errorf("ExtractFloatSlice = %v, %v", got, ok)
	}
	if _, ok := ExtractIntSlice(data, "mixed"); ok {
		t.Errorf("mixed arrays should be rejected")
	}
	if got, ok := ExtractFloat(data, "floor"); !ok || got != 1 {
		t.Errorf("ExtractFloat should accept integers, got %v", got)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	err := WriteFileAtomic(path, func(f *os.File) error {
		_, err := f.WriteString("一\tu\n")
		return err
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "一\tu\n" {
		t.Fatalf("content = %q, %v", data, err)
	}

	boom := errors.New("boom")
	err = WriteFileAtomic(path, func(f *os.File) error {
		f.WriteString("partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "一\tu\n" {
		t.Errorf("failed write replaced the file: %q", data)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %d entries", len(entries))
	}
}

func TestGetDataDir(t *testing.T) {
	root := t.TempDir()
	binDir := filepath.Join(root, "bin")
	dataDir := filepath.Join(root, "data")
	for _, d := range []string{binDir, dataDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dataDir, MainDictFile), []byte("一\tu\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	pr := newPathResolverAt(filepath.Join(binDir, "strokeserve"), root)

	testCases := []struct {
		requested   string
		want        string
		description string
	}{
		{dataDir, dataDir, "absolute path with dictionary"},
		{"missing", dataDir, "falls back to parent data dir"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := pr.GetDataDir(tc.requested); got != tc.want {
				t.Errorf("GetDataDir(%q) = %q, want %q", tc.requested, got, tc.want)
			}
		})
	}

	empty := newPathResolverAt(filepath.Join(t.TempDir(), "bin", "strokeserve"), t.TempDir())
	if got := empty.GetDataDir("/nowhere"); got != "/nowhere" {
		t.Errorf("unresolved absolute path should be returned as is, got %q", got)
	}
}
