package model

import "slices"

// Slot is the state of one shift on one day. A slot is either not offered
// (the shift does not run that day) or offered with an ordered member list.
// An offered slot with no members means the shift runs unstaffed; the two
// states are never interchangeable.
type Slot struct {
	offered bool
	members []string
}

// OfferedSlot returns a slot for a shift that runs, initially unstaffed
func OfferedSlot() *Slot {
	return &Slot{offered: true, members: []string{}}
}

// NotOfferedSlot returns a slot for a shift that does not run
func NotOfferedSlot() *Slot {
	return &Slot{}
}

// Offered reports whether the shift runs at all
func (s *Slot) Offered() bool {
	return s.offered
}

// Members returns a copy of the assigned members in assignment order
func (s *Slot) Members() []string {
	if !s.offered {
		return nil
	}
	return slices.Clone(s.members)
}

// Len returns the number of assigned members, 0 when not offered
func (s *Slot) Len() int {
	return len(s.members)
}

// Contains reports whether the member is assigned to this slot
func (s *Slot) Contains(name string) bool {
	return slices.Contains(s.members, name)
}

// Append adds a member to the end of the slot. Appending to a slot that is
// not offered is a programming error and is ignored.
func (s *Slot) Append(name string) {
	if !s.offered {
		return
	}
	s.members = append(s.members, name)
}

// Remove deletes the member from the slot, reporting whether it was present
func (s *Slot) Remove(name string) bool {
	idx := slices.Index(s.members, name)
	if idx < 0 {
		return false
	}
	s.members = slices.Delete(s.members, idx, idx+1)
	return true
}

// Truncate clamps the slot to the first n members in current order
func (s *Slot) Truncate(n int) {
	if s.offered && len(s.members) > n {
		s.members = s.members[:n]
	}
}

// Roster maps each calendar day to its shift slots. It is built once per
// run, mutated through the assignment passes and the validator, then read
// only by the renderer.
type Roster struct {
	days  []CalendarDay
	slots map[int]map[ShiftKind]*Slot
}

// NewRoster builds the initial roster for the period. Weekend days have
// every slot not offered; restricted days have the restricted kind not
// offered; the morning slot is offered only on dates in morningDates.
func NewRoster(days []CalendarDay, morningDates map[int]bool) *Roster {
	r := &Roster{
		days:  days,
		slots: make(map[int]map[ShiftKind]*Slot, len(days)),
	}

	for _, day := range days {
		daySlots := make(map[ShiftKind]*Slot, len(AllShiftKinds))
		for _, kind := range AllShiftKinds {
			daySlots[kind] = r.initialSlot(day, kind, morningDates)
		}
		r.slots[day.Day] = daySlots
	}

	return r
}

func (r *Roster) initialSlot(day CalendarDay, kind ShiftKind, morningDates map[int]bool) *Slot {
	switch {
	case day.IsWeekend:
		return NotOfferedSlot()
	case kind == RestrictedShiftKind && day.IsRestricted:
		return NotOfferedSlot()
	case kind == ShiftMorning && !morningDates[day.Day]:
		return NotOfferedSlot()
	default:
		return OfferedSlot()
	}
}

// Days returns the calendar days of the period in order
func (r *Roster) Days() []CalendarDay {
	return r.days
}

// Slot returns the slot for the given day-of-month and kind, or nil when
// the day is not part of the period
func (r *Roster) Slot(day int, kind ShiftKind) *Slot {
	daySlots, ok := r.slots[day]
	if !ok {
		return nil
	}
	return daySlots[kind]
}

// ForceNotOffered marks the slot as not running, discarding any members
func (r *Roster) ForceNotOffered(day int, kind ShiftKind) {
	if daySlots, ok := r.slots[day]; ok {
		daySlots[kind] = NotOfferedSlot()
	}
}

// HasShiftOn reports whether the member is assigned anywhere on the day
func (r *Roster) HasShiftOn(day int, name string) bool {
	daySlots, ok := r.slots[day]
	if !ok {
		return false
	}
	for _, slot := range daySlots {
		if slot.Contains(name) {
			return true
		}
	}
	return false
}

// AssignedCount returns the member's total shift count across the period
func (r *Roster) AssignedCount(name string) int {
	count := 0
	for _, daySlots := range r.slots {
		for _, slot := range daySlots {
			if slot.Contains(name) {
				count++
			}
		}
	}
	return count
}
