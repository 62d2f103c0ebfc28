package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Engine.PageSize != 9 || c.Engine.PrefixLimit != 50 || c.Engine.ThreePlusThreeMin != 8 {
		t.Errorf("unexpected resolver defaults %+v", c.Engine)
	}
	if c.Engine.PromotionThreshold != 3 || c.Engine.ContextCapacity != 10 || c.Engine.PredictionLimit != 20 {
		t.Errorf("unexpected learning defaults %+v", c.Engine)
	}
	if !reflect.DeepEqual(c.Engine.DecayWeights, []float64{1.0, 0.8, 0.6, 0.4}) || c.Engine.DecayFloor != 0.2 {
		t.Errorf("unexpected decay defaults %+v", c.Engine)
	}
	if c.Dict.MaxUserEntries != 2000 || c.Dict.UserStore != StoreText {
		t.Errorf("unexpected dict defaults %+v", c.Dict)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[engine]
page_size = 5
enable_prediction = false
decay_days = [2, 10]
decay_weights = [1.0, 0.5]
decay_floor = 0.1

[dict]
main_path = "/srv/strokes.txt"
user_store = "sqlite"

[cli]
chinese_mode = false
`)
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Engine.PageSize != 5 || c.Engine.EnablePrediction || c.Engine.DecayFloor != 0.1 {
		t.Errorf("engine = %+v", c.Engine)
	}
	if !reflect.DeepEqual(c.Engine.DecayDays, []int{2, 10}) {
		t.Errorf("decay_days = %v", c.Engine.DecayDays)
	}
	if c.Dict.MainPath != "/srv/strokes.txt" || c.Dict.UserStore != StoreSQLite {
		t.Errorf("dict = %+v", c.Dict)
	}
	if c.Dict.PhrasePath != "phrases.txt" {
		t.Errorf("missing keys should keep defaults, got %q", c.Dict.PhrasePath)
	}
	if c.CLI.ChineseMode || !c.CLI.ShowCodes {
		t.Errorf("cli = %+v", c.CLI)
	}
}

func TestPartialRecovery(t *testing.T) {
	testCases := []struct {
		content     string
		check       func(*Config) bool
		description string
	}{
		{
			"[engine]\npage_size = \"nine\"\nprefix_limit = 20\n[cli]\nshow_codes = false\n",
			func(c *Config) bool {
				return c.Engine.PageSize == 9 && c.Engine.PrefixLimit == 20 && !c.CLI.ShowCodes
			},
			"wrong type keeps default, other keys recovered",
		},
		{
			"[engine\npage_size = 3\n",
			func(c *Config) bool { return reflect.DeepEqual(c, DefaultConfig()) },
			"broken syntax falls back to defaults",
		},
		{
			"[engine]\ndecay_days = [1, 2, 3]\ndecay_weights = [1.0]\n",
			func(c *Config) bool { return reflect.DeepEqual(c.Engine.DecayDays, []int{1, 7, 30, 90}) },
			"mismatched decay buckets fall back",
		},
		{
			"[engine]\npage_size = 12\n[dict]\nuser_store = \"redis\"\n",
			func(c *Config) bool { return c.Engine.PageSize == 9 && c.Dict.UserStore == StoreText },
			"out of range values are replaced",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			c, err := LoadConfig(writeConfig(t, tc.content))
			if err != nil {
				t.Fatalf("load should never fail on bad content: %v", err)
			}
			if !tc.check(c) {
				t.Errorf("unexpected config %+v", c)
			}
		})
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	c, err := InitConfig(path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !reflect.DeepEqual(c, DefaultConfig()) {
		t.Errorf("new config should hold defaults")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	reloaded, err := LoadConfig(path)
	if err != nil || !reflect.DeepEqual(reloaded, DefaultConfig()) {
		t.Errorf("written config does not reload to defaults: %v", err)
	}
}

func TestLoadConfigWithPriorityCustom(t *testing.T) {
	path := writeConfig(t, "[cli]\nshow_codes = false\n")
	c, used, err := LoadConfigWithPriority(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if used != path || c.CLI.ShowCodes {
		t.Errorf("custom config not used: %s %+v", used, c.CLI)
	}
}

func TestOptionMapping(t *testing.T) {
	c := DefaultConfig()
	c.Engine.PrefixLimit = 7
	c.Engine.ContextCapacity = 4

	if got := c.Engine.SuggestOptions(); got.PrefixLimit != 7 || got.PageSize != 9 {
		t.Errorf("SuggestOptions = %+v", got)
	}
	if got := c.Engine.LearnPolicy(); got.ContextCapacity != 4 || got.PromotionThreshold != 3 {
		t.Errorf("LearnPolicy = %+v", got)
	}
	if got := c.Engine.SessionOptions(false); got.Chinese || !got.EnablePrediction || got.MaxCodeLength != 30 {
		t.Errorf("SessionOptions = %+v", got)
	}
	if c.Dict.SaveDebounce() != 2*time.Second {
		t.Errorf("SaveDebounce = %v", c.Dict.SaveDebounce())
	}
}

func TestResolvePaths(t *testing.T) {
	d := DefaultConfig().Dict
	d.UserPath = "/abs/user.txt"
	r := d.Resolve("/data")
	if r.MainPath != filepath.Join("/data", "strokes.txt") || r.UserPath != "/abs/user.txt" {
		t.Errorf("Resolve = %+v", r)
	}
	if d.Resolve("") != d {
		t.Errorf("empty data dir should keep paths")
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	c := DefaultConfig()
	off := false
	if err := c.Update(path, nil, &off, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if reloaded.CLI.ChineseMode {
		t.Errorf("update not persisted")
	}
}
