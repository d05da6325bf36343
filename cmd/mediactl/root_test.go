package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootListsCommands(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, name := range []string{"migrate", "seed"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("help output missing %q:\n%s", name, out.String())
		}
	}
}

func TestSeedRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"seed", "extra"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("seed with a positional argument succeeded")
	}
}
