package main

import "testing"

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{"serve": false, "migrate": false, "import": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %q subcommand to be registered", name)
		}
	}
}

func TestImportCommandRequiresFile(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"import"})
	if err := root.Execute(); err == nil {
		t.Error("expected error when --file is missing")
	}
}
