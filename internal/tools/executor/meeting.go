package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools/schemas"
)

// Meeting is the typed payload of a schedule_meeting call.
type Meeting struct {
	MeetingID string    `json:"meeting_id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Duration  int       `json:"duration"`
	Attendees []string  `json:"attendees"`
	Timestamp time.Time `json:"timestamp"`
}

// ScheduleMeeting books a meeting from the email request.
type ScheduleMeeting struct{}

func (t *ScheduleMeeting) Name() string { return schemas.ToolScheduleMeeting }

func (t *ScheduleMeeting) Description() string {
	return "Schedule a meeting based on email request"
}

func (t *ScheduleMeeting) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	date := stringArg(input, "date")
	meetingTime := stringArg(input, "time")
	title := stringArg(input, "meeting_title")
	attendees := stringsArg(input, "attendees")
	duration, durationOK := intArg(input, "duration")

	var missing []string
	if date == "" {
		missing = append(missing, "date")
	}
	if meetingTime == "" {
		missing = append(missing, "time")
	}
	if !durationOK {
		missing = append(missing, "duration")
	}
	if len(attendees) == 0 {
		missing = append(missing, "attendees")
	}
	if title == "" {
		missing = append(missing, "meeting_title")
	}
	if len(missing) > 0 {
		return TimedResult(NewErrorResult(
			fmt.Errorf("missing required arguments: %s", strings.Join(missing, ", "))), start), nil
	}

	if duration < schemas.MinMeetingDuration || duration > schemas.MaxMeetingDuration {
		return TimedResult(NewErrorResult(
			fmt.Errorf("duration must be an integer between %d and %d minutes",
				schemas.MinMeetingDuration, schemas.MaxMeetingDuration)), start), nil
	}

	// A structurally valid string can still be an impossible date.
	if !validDate(date) {
		return TimedResult(NewErrorResult(
			fmt.Errorf("date must be in YYYY-MM-DD format")), start), nil
	}
	if !validTime(meetingTime) {
		return TimedResult(NewErrorResult(
			fmt.Errorf("time must be in HH:MM format")), start), nil
	}

	now := time.Now().UTC()
	meeting := Meeting{
		MeetingID: fmt.Sprintf("meeting_%s", now.Format("20060102_150405")),
		Title:     title,
		Date:      date,
		Time:      meetingTime,
		Duration:  duration,
		Attendees: attendees,
		Timestamp: now,
	}

	logger.Logger.Info("meeting scheduled",
		zap.String("meeting_id", meeting.MeetingID),
		zap.String("date", date),
		zap.Int("duration", duration),
	)

	return TimedResult(NewSuccessResult(meeting), start), nil
}
