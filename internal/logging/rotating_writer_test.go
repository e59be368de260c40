package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRotatingWriterKeepsOneBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seating.log")
	w, err := newRotatingWriterBytes(path, 100)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	defer w.Close()

	first := bytes.Repeat([]byte("a"), 80)
	second := bytes.Repeat([]byte("b"), 80)
	if _, err := w.Write(first); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if _, err := w.Write(second); err != nil {
		t.Fatalf("write second: %v", err)
	}

	current, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read current: %v", err)
	}
	if !bytes.Equal(current, second) {
		t.Fatalf("current log = %q, want only the second chunk", current)
	}
	backup, err := os.ReadFile(path + ".1")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !bytes.Equal(backup, first) {
		t.Fatalf("backup log = %q, want the first chunk", backup)
	}
}

func TestRotatingWriterOversizeWriteOnEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seating.log")
	w, err := newRotatingWriterBytes(path, 10)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	defer w.Close()

	if _, err := w.Write(bytes.Repeat([]byte("x"), 32)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Fatalf("expected no backup for first write, stat err = %v", err)
	}
}

func TestRotatingWriterReopensAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seating.log")
	w, err := newRotatingWriter(path, 1)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := w.Write([]byte("after close\n")); err != nil {
		t.Fatalf("write after close: %v", err)
	}
	_ = w.Close()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "after close\n" {
		t.Fatalf("log = %q", data)
	}
}
