package services

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/mhalland/barvakt/internal/config"
	"github.com/mhalland/barvakt/pkg/clients/surveyclient"
	"github.com/mhalland/barvakt/pkg/core/availability"
	"github.com/mhalland/barvakt/pkg/core/matcher"
	"github.com/mhalland/barvakt/pkg/core/model"
	"github.com/mhalland/barvakt/pkg/core/scheduler"
)

// RosterSource supplies the canonical member roster
type RosterSource interface {
	ListMembers(ctx context.Context) ([]string, error)
}

// SurveySource supplies the availability survey
type SurveySource interface {
	LoadSurvey(ctx context.Context) (*surveyclient.Survey, error)
}

// GenerateOptions control a schedule generation run
type GenerateOptions struct {
	// Seed for the assignment shuffles; 0 means seed from the clock
	Seed int64
}

// MemberTotals is the per-member summary shown in the schedule's count columns
type MemberTotals struct {
	Name          string
	Assigned      int
	AvailableDays int
	NoReply       bool
}

// GenerateScheduleResult contains the finished roster and its reports
type GenerateScheduleResult struct {
	RunID   string
	Year    int
	Month   time.Month
	Seed    int64
	Members []string
	Roster  *model.Roster
	Review  []model.ReviewRecord
	Totals  []MemberTotals
	NoReply []string
}

// GenerateSchedule runs the full pipeline: load roster and survey, match
// names, build availability, run both assignment passes and the fallback
// sweep, validate, and summarize. An empty member roster is the only
// fatal input condition; per-row survey anomalies are skipped with a
// warning and unfilled slots are a silent outcome visible in the totals.
func GenerateSchedule(
	ctx context.Context,
	rosterSource RosterSource,
	surveySource SurveySource,
	cfg *config.Config,
	logger *zap.Logger,
	opts GenerateOptions,
) (*GenerateScheduleResult, error) {
	runID := uuid.New().String()
	logger.Info("Starting schedule generation",
		zap.String("run_id", runID),
		zap.Int("year", cfg.Year),
		zap.Int("month", cfg.Month))

	// Step 1: Load canonical member roster (precondition)
	logger.Debug("Loading members")
	members, err := rosterSource.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("member roster is empty - nothing to schedule")
	}
	logger.Debug("Loaded members", zap.Int("count", len(members)))

	// Step 2: Load survey export
	logger.Debug("Loading survey")
	survey, err := surveySource.LoadSurvey(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey: %w", err)
	}
	logger.Debug("Loaded survey",
		zap.Int("responses", len(survey.Responses)),
		zap.Int("work_dates", len(survey.WorkDates)),
		zap.Int("morning_dates", len(survey.MorningDates)))

	// Step 3: Build calendar and requirement table
	month := time.Month(cfg.Month)
	days := scheduler.BuildCalendar(cfg.Year, month)

	reqs := scheduler.NewRequirementTable()
	reqs.EnableMorning(days, survey.MorningDates)

	if err := applyRequirementOverrides(reqs, cfg.RequirementOverrides, days, logger); err != nil {
		return nil, fmt.Errorf("failed to apply requirement overrides: %w", err)
	}

	// Step 4: Match survey names and build availability
	reviewLog := matcher.NewReviewLog()
	availabilityByMember := make(map[string][]availability.DayAvailability)

	for _, response := range survey.Responses {
		matched, confidence := matcher.Match(response.Name, members, reviewLog)
		if !slices.Contains(members, matched) {
			logger.Warn("Survey name did not resolve to a member",
				zap.String("input_name", response.Name))
			continue
		}

		logger.Debug("Matched survey response",
			zap.String("input_name", response.Name),
			zap.String("member", matched),
			zap.Float64("confidence", confidence))

		availabilityByMember[matched] = availability.ForResponse(
			days, response.Cells, response.MorningOptIn, survey.MorningDates)
	}

	responded := make([]string, 0, len(availabilityByMember))
	noReply := make([]string, 0)
	for _, member := range members {
		if _, ok := availabilityByMember[member]; ok {
			responded = append(responded, member)
		} else {
			noReply = append(noReply, member)
		}
	}
	logger.Info("Survey matching complete",
		zap.Int("responded", len(responded)),
		zap.Int("no_reply", len(noReply)),
		zap.Int("review_entries", reviewLog.Len()))

	// Step 5: Run the assignment passes
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Debug("Seeded assignment RNG", zap.Int64("seed", seed))

	roster := model.NewRoster(days, survey.MorningDates)
	engine := scheduler.NewEngine(reqs, rng, logger)

	engine.Assign(roster, availabilityByMember, responded, noReply, 1)
	engine.Assign(roster, availabilityByMember, responded, noReply, 2)
	engine.FallbackSweep(roster, noReply)

	// Step 6: Validate (last line of defense, idempotent)
	noReplySet := make(map[string]bool, len(noReply))
	for _, member := range noReply {
		noReplySet[member] = true
	}
	scheduler.Validate(roster, availabilityByMember, noReplySet, reqs, logger)

	// Step 7: Per-member totals for the report columns
	totals := make([]MemberTotals, len(members))
	for i, member := range members {
		totals[i] = MemberTotals{
			Name:          member,
			Assigned:      roster.AssignedCount(member),
			AvailableDays: len(availabilityByMember[member]),
			NoReply:       noReplySet[member],
		}
	}

	logger.Info("Schedule generation complete",
		zap.String("run_id", runID),
		zap.Int("members", len(members)),
		zap.Int("review_entries", reviewLog.Len()))

	return &GenerateScheduleResult{
		RunID:   runID,
		Year:    cfg.Year,
		Month:   month,
		Seed:    seed,
		Members: members,
		Roster:  roster,
		Review:  reviewLog.Records(),
		Totals:  totals,
		NoReply: noReply,
	}, nil
}

// applyRequirementOverrides expands each configured rrule against the
// scheduling period and pins the matched dates' requirements
func applyRequirementOverrides(
	reqs *scheduler.RequirementTable,
	overrides []config.RequirementOverride,
	days []model.CalendarDay,
	logger *zap.Logger,
) error {
	if len(days) == 0 || len(overrides) == 0 {
		return nil
	}
	periodStart := days[0].Date
	periodEnd := days[len(days)-1].Date

	for i, override := range overrides {
		rule, err := rrule.StrToRRule(override.RRule)
		if err != nil {
			return fmt.Errorf("failed to parse rrule for override %d: %w", i, err)
		}
		rule.DTStart(periodStart)

		kind := model.ShiftKind(override.Shift)
		occurrences := rule.Between(periodStart, periodEnd, true)
		for _, occurrence := range occurrences {
			reqs.SetDateOverride(occurrence.Day(), kind, override.Staff)
		}

		logger.Debug("Applied requirement override",
			zap.Int("index", i),
			zap.String("rrule", override.RRule),
			zap.String("shift", override.Shift),
			zap.Int("staff", override.Staff),
			zap.Int("matched_dates", len(occurrences)))
	}

	return nil
}
