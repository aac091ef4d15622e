package domain

import (
	"fmt"

	apperrors "timebox/internal/platform/errors"
)

// The helpers below are whole-sheet transformations: each returns an edited
// copy and never touches its input.

// AddPriority appends a blank priority; at MaxPriorities it is a no-op.
func AddPriority(s Sheet) Sheet {
	out := s.Clone()
	if len(out.Priorities) >= MaxPriorities {
		return out
	}
	out.Priorities = append(out.Priorities, "")
	return out
}

// RemovePriority drops the priority at index; the last one is never removed.
func RemovePriority(s Sheet, index int) (Sheet, error) {
	out := s.Clone()
	if err := checkIndex("priority", index, len(out.Priorities)); err != nil {
		return s, err
	}
	if len(out.Priorities) <= MinPriorities {
		return out, nil
	}
	out.Priorities = append(out.Priorities[:index], out.Priorities[index+1:]...)
	return out, nil
}

func SetPriority(s Sheet, index int, text string) (Sheet, error) {
	out := s.Clone()
	if err := checkIndex("priority", index, len(out.Priorities)); err != nil {
		return s, err
	}
	out.Priorities[index] = text
	return out, nil
}

// SetSlotTask sets the task of the slot at the absolute grid index.
func SetSlotTask(s Sheet, index int, task string) (Sheet, error) {
	out := s.Clone()
	if err := checkIndex("slot", index, len(out.Hours)); err != nil {
		return s, err
	}
	out.Hours[index].Task = task
	return out, nil
}

func SetSlotNotes(s Sheet, index int, notes string) (Sheet, error) {
	out := s.Clone()
	if err := checkIndex("slot", index, len(out.Hours)); err != nil {
		return s, err
	}
	out.Hours[index].Notes = notes
	return out, nil
}

// SetSlot sets the task and, when notes is non-nil, the notes of one slot in
// a single edit.
func SetSlot(s Sheet, index int, task string, notes *string) (Sheet, error) {
	out, err := SetSlotTask(s, index, task)
	if err != nil || notes == nil {
		return out, err
	}
	return SetSlotNotes(out, index, *notes)
}

func SetBrainDump(s Sheet, text string) Sheet {
	out := s.Clone()
	out.BrainDump = text
	return out
}

func checkIndex(what string, index, n int) error {
	if index < 0 || index >= n {
		return fmt.Errorf("%w: %s index %d out of range [0,%d)", apperrors.ErrInvalidInput, what, index, n)
	}
	return nil
}
