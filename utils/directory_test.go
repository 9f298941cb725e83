package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPrepareOutputDirectory_CreatesNestedDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := PrepareOutputDirectory(path); err != nil {
		t.Fatalf("cannot prepare directory; %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("directory was not created; %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%v is not a directory", path)
	}
}

func TestPrepareOutputDirectory_AcceptsExistingDirectory(t *testing.T) {
	if err := PrepareOutputDirectory(t.TempDir()); err != nil {
		t.Errorf("unexpected error; %v", err)
	}
}

func TestPrepareOutputDirectory_RejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("hello"), 0600); err != nil {
		t.Fatalf("cannot create file; %v", err)
	}
	if err := PrepareOutputDirectory(path); err == nil {
		t.Errorf("expected an error for a regular file")
	}
}

func TestPrepareOutputDirectory_RejectsEmptyPath(t *testing.T) {
	if err := PrepareOutputDirectory(""); err == nil {
		t.Errorf("expected an error for an empty path")
	}
}
