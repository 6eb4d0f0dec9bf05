package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/mhalland/barvakt/internal/config"
	"github.com/mhalland/barvakt/pkg/core/availability"
	"github.com/mhalland/barvakt/pkg/core/matcher"
	"github.com/mhalland/barvakt/pkg/core/model"
	"github.com/mhalland/barvakt/pkg/core/scheduler"
)

// MemberResponse is one member's parsed availability
type MemberResponse struct {
	Member       string
	Availability []availability.DayAvailability
}

// ViewResponsesResult contains the parsed survey state without any assignment
type ViewResponsesResult struct {
	Month     time.Month
	Responses []MemberResponse
	Review    []model.ReviewRecord
	NoReply   []string
}

// ViewResponses loads and matches the survey without assigning any
// shifts, for checking the data before generating a schedule
func ViewResponses(
	ctx context.Context,
	rosterSource RosterSource,
	surveySource SurveySource,
	cfg *config.Config,
	logger *zap.Logger,
) (*ViewResponsesResult, error) {
	logger.Debug("Loading members")
	members, err := rosterSource.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("member roster is empty")
	}

	logger.Debug("Loading survey")
	survey, err := surveySource.LoadSurvey(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey: %w", err)
	}

	month := time.Month(cfg.Month)
	days := scheduler.BuildCalendar(cfg.Year, month)

	reviewLog := matcher.NewReviewLog()
	availabilityByMember := make(map[string][]availability.DayAvailability)

	for _, response := range survey.Responses {
		matched, _ := matcher.Match(response.Name, members, reviewLog)
		if !slices.Contains(members, matched) {
			continue
		}
		availabilityByMember[matched] = availability.ForResponse(
			days, response.Cells, response.MorningOptIn, survey.MorningDates)
	}

	result := &ViewResponsesResult{
		Month:     month,
		Responses: make([]MemberResponse, 0, len(availabilityByMember)),
		Review:    reviewLog.Records(),
		NoReply:   make([]string, 0),
	}
	for _, member := range members {
		if entries, ok := availabilityByMember[member]; ok {
			result.Responses = append(result.Responses, MemberResponse{
				Member:       member,
				Availability: entries,
			})
		} else {
			result.NoReply = append(result.NoReply, member)
		}
	}

	logger.Info("Parsed survey responses",
		zap.Int("responded", len(result.Responses)),
		zap.Int("no_reply", len(result.NoReply)),
		zap.Int("review_entries", len(result.Review)))

	return result, nil
}
