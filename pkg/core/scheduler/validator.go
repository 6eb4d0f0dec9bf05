package scheduler

import (
	"go.uber.org/zap"

	"github.com/mhalland/barvakt/pkg/core/availability"
	"github.com/mhalland/barvakt/pkg/core/model"
)

// Validate sanitizes the roster after both assignment passes. It is the
// last line of defense against the heuristic's randomness and must stay
// idempotent: running it on an already-validated roster changes nothing.
//
// Per non-weekend day it forces the restricted slot to not-offered on
// restricted days, removes members assigned to a kind they never recorded
// as available (no-reply members have no record and are exempt), and
// clamps every offered slot to its required headcount by truncation.
func Validate(
	roster *model.Roster,
	availabilityByMember map[string][]availability.DayAvailability,
	noReply map[string]bool,
	reqs *RequirementTable,
	logger *zap.Logger,
) {
	for _, day := range roster.Days() {
		if day.IsWeekend {
			continue
		}

		if day.IsRestricted {
			roster.ForceNotOffered(day.Day, model.RestrictedShiftKind)
		}

		for _, kind := range model.AllShiftKinds {
			slot := roster.Slot(day.Day, kind)
			if slot == nil || !slot.Offered() {
				continue
			}

			for _, name := range slot.Members() {
				if noReply[name] {
					continue
				}
				if !availability.Includes(availabilityByMember[name], day.Day, kind) {
					slot.Remove(name)
					logger.Warn("Removed member from shift they did not sign up for",
						zap.String("member", name),
						zap.Int("day", day.Day),
						zap.String("shift", string(kind)))
				}
			}

			required := reqs.Requirement(day, kind)
			if slot.Len() > required {
				logger.Warn("Shift over capacity, truncating",
					zap.Int("day", day.Day),
					zap.String("shift", string(kind)),
					zap.Int("assigned", slot.Len()),
					zap.Int("required", required))
				slot.Truncate(required)
			}
		}
	}
}
