package schemas

// Tool names fixed for the email triage domain.
const (
	ToolClassifyEmail   = "classify_email"
	ToolGenerateDraft   = "generate_draft"
	ToolScheduleMeeting = "schedule_meeting"
	ToolCreateTask      = "create_task"
)

// Enumerations shared between schemas and handlers.
var (
	EmailTypes     = []string{"inquiry", "complaint", "meeting_request", "task_assignment", "spam", "other"}
	Priorities     = []string{"low", "medium", "high", "urgent"}
	Tones          = []string{"formal", "friendly", "neutral", "apologetic"}
	Urgencies      = []string{"low", "medium", "high"}
	ResponseTypes  = []string{"acknowledgment", "information_request", "meeting_proposal", "task_confirmation"}
	TaskPriorities = []string{"low", "medium", "high"}
)

// Meeting duration bounds in minutes.
const (
	MinMeetingDuration = 15
	MaxMeetingDuration = 480
)

// Defaults returns the registry with the four email triage tools.
func Defaults() *Registry {
	r := NewRegistry()

	r.Register(NewDefinition(ToolClassifyEmail, "Classify the email type and determine priority level").
		Enum("email_type", "The type of email received", EmailTypes, true).
		Enum("priority", "Priority level of the email", Priorities, true).
		String("category", "Brief category description", true).
		Build())

	r.Register(NewDefinition(ToolGenerateDraft, "Generate a professional draft response to the email").
		Enum("tone", "Tone of the response", Tones, true).
		String("summary", "Brief summary of the email content", true).
		Enum("urgency", "Urgency level for response", Urgencies, true).
		Enum("response_type", "Type of response needed", ResponseTypes, true).
		Build())

	r.Register(NewDefinition(ToolScheduleMeeting, "Schedule a meeting based on email request").
		String("date", "Meeting date in YYYY-MM-DD format", true).
		String("time", "Meeting time in HH:MM format", true).
		Integer("duration", "Meeting duration in minutes", MinMeetingDuration, MaxMeetingDuration, true).
		Array("attendees", "List of attendee email addresses", 1, true).
		String("meeting_title", "Title/subject of the meeting", true).
		Build())

	r.Register(NewDefinition(ToolCreateTask, "Create a follow-up task based on email content").
		String("title", "Task title", true).
		String("description", "Detailed task description", true).
		String("due_date", "Due date in YYYY-MM-DD format", true).
		Enum("priority", "Task priority", TaskPriorities, true).
		String("assignee", "Email of person assigned to task", true).
		Build())

	return r
}
