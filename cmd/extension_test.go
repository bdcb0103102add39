package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeScript creates an executable shell script named name in dir.
func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	env := setup(t, sampleBook)
	*journalFile = filepath.Join(env.dir, "journal.jsonl")

	bin := t.TempDir()
	writeScript(t, bin, "mdc-hello", `echo "book=$MDC_BOOK_FILE"; echo "journal=$MDC_JOURNAL"; echo "args=$*"`)
	writeScript(t, bin, "mdc-fail", "exit 3")
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found || code != 0 {
		t.Fatalf("RunExtension(hello) = %v, %d, want true, 0", found, code)
	}
	for _, want := range []string{"book=" + env.book, "journal=" + *journalFile, "args=a b"} {
		if !strings.Contains(env.out.String(), want) {
			t.Errorf("extension output does not contain %q:\n%s", want, env.out)
		}
	}

	if found, code := RunExtension("fail", nil); !found || code != 3 {
		t.Errorf("RunExtension(fail) = %v, %d, want true, 3", found, code)
	}
	if found, _ := RunExtension("missing", nil); found {
		t.Error("RunExtension(missing) found an extension")
	}
}
