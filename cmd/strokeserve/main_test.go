package main

import (
	"sort"
	"testing"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	sort.Strings(names)
	want := []string{"cli", "config", "paths", "serve", "typer", "version"}
	for _, w := range want {
		i := sort.SearchStrings(names, w)
		if i >= len(names) || names[i] != w {
			t.Errorf("missing command %q in %v", w, names)
		}
	}
	for _, flag := range []string{"config", "data", "debug"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
	if root.PersistentFlags().ShorthandLookup("d") == nil {
		t.Errorf("missing -d shorthand")
	}
}
