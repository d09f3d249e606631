package app

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"example.com/lineedit/pkg/logs"
)

// eventRec matches the JSON lines written by pkg/logs.Logger.
type eventRec struct {
	Msg     string `json:"msg"`
	File    string `json:"file"`
	Command string `json:"command"`
	Error   string `json:"error"`
}

func readEvents(t *testing.T, path string) []eventRec {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var events []eventRec
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec eventRec
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("bad log line %q: %v", sc.Text(), err)
		}
		events = append(events, rec)
	}
	return events
}

func TestLoadSeed_EmitsLoggingEvents(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "events.jsonl")
	t.Setenv("LINEEDIT_LOG_FILE", logPath)
	t.Setenv("LINEEDIT_LOG", "1")

	r := New(nil)
	r.Logger = logs.NewFromEnv()
	if !r.Logger.Enabled() {
		t.Fatalf("expected logger from env")
	}

	bad := filepath.Join(dir, "missing.txt")
	if err := r.LoadSeed(bad); err == nil {
		t.Fatalf("expected error for missing seed")
	}

	good := filepath.Join(dir, "seed.txt")
	if err := os.WriteFile(good, []byte("hello\r\nworld\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.LoadSeed(good); err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if r.Seed != "hello\nworld\n" {
		t.Fatalf("expected normalized content, got %q", r.Seed)
	}
	r.Logger.Close()

	var seen []string
	for _, ev := range readEvents(t, logPath) {
		seen = append(seen, ev.Msg+":"+filepath.Base(ev.File))
	}
	want := []string{"open.attempt:missing.txt", "open.error:missing.txt", "open.attempt:seed.txt", "open.success:seed.txt"}
	if len(seen) != len(want) {
		t.Fatalf("expected events %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected events %v, got %v", want, seen)
		}
	}
}

func TestExecute_EmitsCommandEvents(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "events.jsonl")
	r := New(nil)
	r.Logger = logs.New(logs.Options{File: logPath})
	r.Seed = "one\ntwo\n"
	if err := r.LoadScript(writeFile(t, "s.led", "1d\n/zzz/\n")); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if _, err := r.Execute(); err == nil {
		t.Fatalf("expected search failure")
	}
	r.Logger.Close()

	var apply, failed []eventRec
	for _, ev := range readEvents(t, logPath) {
		switch ev.Msg {
		case "command.apply":
			apply = append(apply, ev)
		case "command.error":
			failed = append(failed, ev)
		}
	}
	if len(apply) != 1 || len(failed) != 1 {
		t.Fatalf("expected one apply and one error event, got %d and %d", len(apply), len(failed))
	}
	if failed[0].Error == "" {
		t.Fatalf("error event missing reason: %+v", failed[0])
	}
}
