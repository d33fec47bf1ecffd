package book

import "github.com/uninurse/uninurse/internal/domain/patient"

// DefaultHistoryLimit is the undo depth when none is configured.
const DefaultHistoryLimit = 100

type snapshot struct {
	before  []patient.Patient
	after   []patient.Patient
	tracker *PatientListTracker
}

// history is a bounded undo/redo log of master-list snapshots.
type history struct {
	limit int
	undo  []snapshot
	redo  []snapshot
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &history{limit: limit}
}

// record appends s and discards anything that could have been redone.
func (h *history) record(s snapshot) {
	h.undo = append(h.undo, s)
	if len(h.undo) > h.limit {
		h.undo = append([]snapshot(nil), h.undo[len(h.undo)-h.limit:]...)
	}
	h.redo = nil
}

func (h *history) popUndo() (snapshot, bool) {
	if len(h.undo) == 0 {
		return snapshot{}, false
	}
	s := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, s)
	return s, true
}

func (h *history) popRedo() (snapshot, bool) {
	if len(h.redo) == 0 {
		return snapshot{}, false
	}
	s := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, s)
	return s, true
}
