package dto

import "timebox/internal/modules/sheet/domain"

func FromDomain(s domain.Sheet) Sheet {
	out := Sheet{
		ID:            s.ID,
		Date:          s.Date,
		FormattedDate: s.FormattedDate,
		Priorities:    append([]string{}, s.Priorities...),
		Hours:         FromSlots(s.Hours),
		BrainDump:     s.BrainDump,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if s.Window != nil {
		out.Window = &Window{StartHour: s.Window.StartHour, EndHour: s.Window.EndHour}
	}
	return out
}

func FromDomainList(sheets []domain.Sheet) []Sheet {
	out := make([]Sheet, 0, len(sheets))
	for _, s := range sheets {
		out = append(out, FromDomain(s))
	}
	return out
}

// ToDomain drops FormattedDate; it is recomputed on read.
func (s Sheet) ToDomain() domain.Sheet {
	return domain.Sheet{
		ID:         s.ID,
		Date:       s.Date,
		Priorities: append([]string{}, s.Priorities...),
		Hours:      ToSlots(s.Hours),
		Window:     s.Window.toDomain(),
		BrainDump:  s.BrainDump,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func ToDomainList(sheets []Sheet) []domain.Sheet {
	out := make([]domain.Sheet, 0, len(sheets))
	for _, s := range sheets {
		out = append(out, s.ToDomain())
	}
	return out
}

func (w *Window) toDomain() *domain.Window {
	if w == nil {
		return nil
	}
	return &domain.Window{StartHour: w.StartHour, EndHour: w.EndHour}
}

// HourLabel is the grid's label for an hour of day, for callers that only
// see the wire types.
func HourLabel(hour int) string {
	return domain.HourLabel(hour)
}

// ToDomainWindow converts an optional wire window.
func ToDomainWindow(w *Window) *domain.Window {
	return w.toDomain()
}

func FromSlots(hours []domain.Slot) []Slot {
	out := make([]Slot, 0, len(hours))
	for _, h := range hours {
		out = append(out, Slot{Task: h.Task, Notes: h.Notes})
	}
	return out
}

func ToSlots(hours []Slot) []domain.Slot {
	out := make([]domain.Slot, 0, len(hours))
	for _, h := range hours {
		out = append(out, domain.Slot{Task: h.Task, Notes: h.Notes})
	}
	return out
}
