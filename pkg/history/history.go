package history

import (
	"fmt"

	"example.com/lineedit/pkg/edit"
)

// Entry is one recorded buffer state and the command that produced it.
type Entry struct {
	Label   string // empty for the initial state
	Context edit.Context
}

// Journal keeps the sequence of states a pipeline run went through and a
// position within it, so the run can be stepped through backward and forward.
type Journal struct {
	entries []Entry
	pos     int
}

// New creates an empty Journal.
func New() *Journal { return &Journal{} }

// Record appends a snapshot of ctx and makes it current. Entries after the
// current position are dropped, as a new edit drops the redo stack.
func (j *Journal) Record(label string, ctx edit.Context) {
	if len(j.entries) > 0 {
		j.entries = j.entries[:j.pos+1]
	}
	j.entries = append(j.entries, Entry{Label: label, Context: ctx.Clone()})
	j.pos = len(j.entries) - 1
}

// Len returns the number of recorded entries.
func (j *Journal) Len() int { return len(j.entries) }

// Position returns the 0-based index of the current entry.
func (j *Journal) Position() int { return j.pos }

// Current returns the current entry.
func (j *Journal) Current() (Entry, bool) {
	if len(j.entries) == 0 {
		return Entry{}, false
	}
	return j.entries[j.pos], true
}

// CanBack reports whether there is an earlier entry.
func (j *Journal) CanBack() bool { return j.pos > 0 }

// CanForward reports whether there is a later entry.
func (j *Journal) CanForward() bool { return j.pos < len(j.entries)-1 }

// Back moves to the previous entry.
func (j *Journal) Back() error {
	if !j.CanBack() {
		return fmt.Errorf("already at the first state")
	}
	j.pos--
	return nil
}

// Forward moves to the next entry.
func (j *Journal) Forward() error {
	if !j.CanForward() {
		return fmt.Errorf("already at the last state")
	}
	j.pos++
	return nil
}

// First moves to the oldest entry.
func (j *Journal) First() { j.pos = 0 }

// Last moves to the newest entry.
func (j *Journal) Last() {
	if len(j.entries) > 0 {
		j.pos = len(j.entries) - 1
	}
}

// Observe is a pipeline step observer. The first step it sees also records
// the state before it, so the initial buffer is kept even when that step
// fails. Failed steps add no entry.
func (j *Journal) Observe(step edit.Step) {
	if len(j.entries) == 0 {
		j.Record("", step.Before)
	}
	if step.Err != nil {
		return
	}
	j.Record(edit.Describe(step.Command), step.After)
}
