package scheduler

import (
	"math/rand"
	"slices"

	"go.uber.org/zap"

	"github.com/mhalland/barvakt/pkg/core/availability"
	"github.com/mhalland/barvakt/pkg/core/model"
)

// Engine runs the randomized assignment heuristic. It owns a seeded
// *rand.Rand for the run so that results are reproducible under a pinned
// seed; candidate lists are always shuffled as copies, never in place.
type Engine struct {
	reqs   *RequirementTable
	rng    *rand.Rand
	logger *zap.Logger
}

// NewEngine creates an engine with the given requirement table and RNG
func NewEngine(reqs *RequirementTable, rng *rand.Rand, logger *zap.Logger) *Engine {
	return &Engine{reqs: reqs, rng: rng, logger: logger}
}

// Assign runs one pass over all members, placing shifts until each member
// reaches target total shifts or their candidates are exhausted. An unmet
// target is not an error; coverage gaps surface in the totals only.
//
// responded is iterated in roster order for determinism under a pinned
// seed; each member's candidate days are shuffled before scanning. A
// candidate day is skipped when it is a weekend, when the member worked
// the nearest preceding workday, or when the member already holds a
// shift that day. No-reply members are swept over shuffled
// workdays with the standard shift kinds only.
func (e *Engine) Assign(
	roster *model.Roster,
	availabilityByMember map[string][]availability.DayAvailability,
	responded []string,
	noReply []string,
	target int,
) {
	days := roster.Days()

	for _, name := range responded {
		if roster.AssignedCount(name) >= target {
			continue
		}

		entries := slices.Clone(availabilityByMember[name])
		e.rng.Shuffle(len(entries), func(i, j int) {
			entries[i], entries[j] = entries[j], entries[i]
		})

		for _, entry := range entries {
			day, ok := DayByNumber(days, entry.Day)
			if !ok || day.IsWeekend {
				continue
			}
			if e.workedPreviousDay(roster, days, day, name) {
				continue
			}
			if roster.HasShiftOn(day.Day, name) {
				continue
			}

			eligible := e.offeredIntersection(roster, day, entry.Shifts)
			if e.tryAssign(roster, day, eligible, name) {
				if roster.AssignedCount(name) >= target {
					break
				}
			}
		}
	}

	workdays := Workdays(days)
	for _, name := range noReply {
		if roster.AssignedCount(name) >= target {
			continue
		}

		shuffled := slices.Clone(workdays)
		e.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		for _, day := range shuffled {
			if roster.HasShiftOn(day.Day, name) {
				continue
			}
			eligible := e.offeredIntersection(roster, day, model.StandardShiftKinds)
			if e.tryAssign(roster, day, eligible, name) {
				if roster.AssignedCount(name) >= target {
					break
				}
			}
		}
	}
}

// FallbackSweep guarantees at least one shift per no-reply member. Unlike
// the randomized passes it walks workdays in fixed calendar order and
// takes the first under-capacity standard slot.
func (e *Engine) FallbackSweep(roster *model.Roster, noReply []string) {
	workdays := Workdays(roster.Days())

	for _, name := range noReply {
		if roster.AssignedCount(name) > 0 {
			continue
		}

	sweep:
		for _, day := range workdays {
			for _, kind := range model.StandardShiftKinds {
				slot := roster.Slot(day.Day, kind)
				if slot == nil || !slot.Offered() {
					continue
				}
				if slot.Len() < e.reqs.Requirement(day, kind) {
					slot.Append(name)
					e.logger.Debug("Fallback-assigned no-reply member",
						zap.String("member", name),
						zap.Int("day", day.Day),
						zap.String("shift", string(kind)))
					break sweep
				}
			}
		}
	}
}

// tryAssign places the member into one of the eligible kinds on the day.
// The morning shift is preferred when eligible and under capacity; the
// remaining kinds are tried in shuffled order.
func (e *Engine) tryAssign(roster *model.Roster, day model.CalendarDay, eligible []model.ShiftKind, name string) bool {
	if slices.Contains(eligible, model.ShiftMorning) {
		if e.placeIfUnderCapacity(roster, day, model.ShiftMorning, name) {
			return true
		}
	}

	others := make([]model.ShiftKind, 0, len(eligible))
	for _, kind := range eligible {
		if kind != model.ShiftMorning {
			others = append(others, kind)
		}
	}
	e.rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	for _, kind := range others {
		if e.placeIfUnderCapacity(roster, day, kind, name) {
			return true
		}
	}
	return false
}

func (e *Engine) placeIfUnderCapacity(roster *model.Roster, day model.CalendarDay, kind model.ShiftKind, name string) bool {
	slot := roster.Slot(day.Day, kind)
	if slot == nil || !slot.Offered() {
		return false
	}
	if slot.Len() >= e.reqs.Requirement(day, kind) {
		return false
	}

	slot.Append(name)
	e.logger.Debug("Assigned shift",
		zap.String("member", name),
		zap.Int("day", day.Day),
		zap.String("shift", string(kind)))
	return true
}

// offeredIntersection filters the member's stated kinds down to slots
// that actually run on the day
func (e *Engine) offeredIntersection(roster *model.Roster, day model.CalendarDay, kinds []model.ShiftKind) []model.ShiftKind {
	eligible := make([]model.ShiftKind, 0, len(kinds))
	for _, kind := range kinds {
		slot := roster.Slot(day.Day, kind)
		if slot != nil && slot.Offered() {
			eligible = append(eligible, kind)
		}
	}
	return eligible
}

// workedPreviousDay applies the rest rule: a member who worked the
// nearest preceding workday may not work today. Weekend days in between
// do not count, so a Friday shift blocks the following Monday.
func (e *Engine) workedPreviousDay(roster *model.Roster, days []model.CalendarDay, day model.CalendarDay, name string) bool {
	idx := slices.IndexFunc(days, func(d model.CalendarDay) bool { return d.Day == day.Day })
	for i := idx - 1; i >= 0; i-- {
		if days[i].IsWeekend {
			continue
		}
		return roster.HasShiftOn(days[i].Day, name)
	}
	return false
}
