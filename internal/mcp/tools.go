package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/everday/everday/internal/app"
	"github.com/everday/everday/internal/domain/dashboard"
	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/domain/journal"
	"github.com/everday/everday/internal/domain/plan"
)

const (
	defaultNoteLimit = 10
	writeBackTimeout = 30 * time.Second
)

type emptyInput struct{}

type habitStreak struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CurrentStreak int    `json:"current_streak"`
	BestStreak    int    `json:"best_streak"`
	LastCompleted string `json:"last_completed,omitempty"`
	TodayStatus   string `json:"today_status"`
}

type habitBoardOutput struct {
	Today  string        `json:"today"`
	Habits []habitStreak `json:"habits"`
}

type planStatusOutput struct {
	Plan          string          `json:"plan"`
	Tier          string          `json:"tier"`
	IsPremium     bool            `json:"is_premium"`
	PlanExpiresAt string          `json:"plan_expires_at,omitempty"`
	Capabilities  map[string]bool `json:"capabilities"`
}

type recentNotesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of notes to return, default 10"`
}

type noteSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedAt string `json:"updated_at"`
}

type recentNotesOutput struct {
	Notes []noteSummary `json:"notes"`
}

type journalMonthInput struct {
	Year  int `json:"year,omitempty" jsonschema:"calendar year, defaults to the current year"`
	Month int `json:"month,omitempty" jsonschema:"month number 1-12, defaults to the current month"`
}

type journalPage struct {
	Date       string `json:"date"`
	Mood       string `json:"mood,omitempty"`
	Thoughts   string `json:"thoughts,omitempty"`
	GoodThings string `json:"good_things,omitempty"`
	BadThings  string `json:"bad_things,omitempty"`
	Lessons    string `json:"lessons,omitempty"`
	Dreams     string `json:"dreams,omitempty"`
}

type journalMonthOutput struct {
	Year    int           `json:"year"`
	Month   int           `json:"month"`
	Entries []journalPage `json:"entries"`
}

type activityCounts struct {
	From             string `json:"from"`
	Todos            int    `json:"todos"`
	HabitLogs        int    `json:"habit_logs"`
	PomodoroSessions int    `json:"pomodoro_sessions"`
	JournalEntries   int    `json:"journal_entries"`
	Notes            int    `json:"notes"`
}

type dashboardOutput struct {
	GeneratedAt string         `json:"generated_at"`
	Today       activityCounts `json:"today"`
	Week        activityCounts `json:"week"`
	Month       activityCounts `json:"month"`
	Year        activityCounts `json:"year"`
}

type toolSet struct {
	app    *app.App
	logger *slog.Logger
	now    func() time.Time
}

func registerTools(server *sdkmcp.Server, a *app.App, logger *slog.Logger) {
	t := &toolSet{app: a, logger: logger, now: time.Now}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "habit_board",
		Description: "Current and best streak of every active habit, with today's status",
	}, t.habitBoard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "plan_status",
		Description: "The account's plan and which premium capabilities it unlocks",
	}, t.planStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_notes",
		Description: "The most recently created notes",
	}, t.recentNotes)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "journal_month",
		Description: "Journal pages of one calendar month",
	}, t.journalMonth)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "ai_dashboard",
		Description: "Counts of todos, habit logs, pomodoro sessions, journal entries and notes created today, this week, this month and this year",
	}, t.aiDashboard)
}

// owner resolves the connection's account and checks the AI chat capability.
func (t *toolSet) owner(ctx context.Context) (plan.Scope, app.Services, error) {
	return t.ownerWith(ctx, plan.CapAIChat)
}

func (t *toolSet) ownerWith(ctx context.Context, capability plan.Capability) (plan.Scope, app.Services, error) {
	accountID := getAccountID(ctx)
	if accountID == "" {
		return plan.Scope{}, app.Services{}, ErrUnauthorized
	}
	scope, svc, err := t.app.Owner(ctx, accountID, nil)
	if err != nil {
		return plan.Scope{}, app.Services{}, err
	}
	if err := plan.Require(capability, scope.Tier); err != nil {
		return plan.Scope{}, app.Services{}, err
	}
	return scope, svc, nil
}

func (t *toolSet) habitBoard(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, habitBoardOutput, error) {
	scope, svc, err := t.owner(ctx)
	if err != nil {
		return nil, habitBoardOutput{}, toolError(err)
	}
	board, wb, err := svc.Habits.Board(ctx, scope)
	if err != nil {
		return nil, habitBoardOutput{}, toolError(err)
	}
	wb.Observe(t.logger.With("account_id", scope.OwnerID), writeBackTimeout)

	out := habitBoardOutput{Today: board.Today, Habits: make([]habitStreak, 0, len(board.Habits))}
	for _, v := range board.Habits {
		hs := habitStreak{
			ID:            v.ID,
			Name:          v.Name,
			BestStreak:    v.BestStreak,
			LastCompleted: v.LastCompleted,
			TodayStatus:   string(habit.DayNotApplicable),
		}
		if v.Streak != nil {
			hs.CurrentStreak = v.Streak.Current
			hs.BestStreak = v.Streak.Best
		}
		for _, d := range v.Days {
			if d.Date == board.Today {
				hs.TodayStatus = string(d.Status)
			}
		}
		out.Habits = append(out.Habits, hs)
	}
	return nil, out, nil
}

func (t *toolSet) planStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, planStatusOutput, error) {
	scope, _, err := t.owner(ctx)
	if err != nil {
		return nil, planStatusOutput{}, toolError(err)
	}
	status, err := t.app.Accounts.PlanStatus(ctx, scope.OwnerID)
	if err != nil {
		return nil, planStatusOutput{}, toolError(err)
	}

	out := planStatusOutput{
		Plan:         status.Plan,
		Tier:         status.Tier,
		IsPremium:    status.IsPremium,
		Capabilities: make(map[string]bool, len(status.Capabilities)),
	}
	if status.PlanExpiresAt != nil {
		out.PlanExpiresAt = status.PlanExpiresAt.UTC().Format(time.RFC3339)
	}
	for c, ok := range status.Capabilities {
		out.Capabilities[string(c)] = ok
	}
	return nil, out, nil
}

func (t *toolSet) recentNotes(ctx context.Context, _ *sdkmcp.CallToolRequest, in recentNotesInput) (*sdkmcp.CallToolResult, recentNotesOutput, error) {
	scope, svc, err := t.owner(ctx)
	if err != nil {
		return nil, recentNotesOutput{}, toolError(err)
	}
	notes, err := svc.Notes.List(ctx, scope)
	if err != nil {
		return nil, recentNotesOutput{}, toolError(err)
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultNoteLimit
	}
	if len(notes) > limit {
		notes = notes[:limit]
	}
	out := recentNotesOutput{Notes: make([]noteSummary, 0, len(notes))}
	for _, n := range notes {
		out.Notes = append(out.Notes, noteSummary{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			UpdatedAt: n.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return nil, out, nil
}

func (t *toolSet) journalMonth(ctx context.Context, _ *sdkmcp.CallToolRequest, in journalMonthInput) (*sdkmcp.CallToolResult, journalMonthOutput, error) {
	scope, svc, err := t.owner(ctx)
	if err != nil {
		return nil, journalMonthOutput{}, toolError(err)
	}

	now := t.now().UTC()
	year, month := in.Year, in.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	entries, err := svc.Journal.Month(ctx, scope, year, time.Month(month))
	if err != nil {
		return nil, journalMonthOutput{}, toolError(err)
	}

	out := journalMonthOutput{Year: year, Month: month, Entries: make([]journalPage, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, pageOf(e))
	}
	return nil, out, nil
}

func (t *toolSet) aiDashboard(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, dashboardOutput, error) {
	scope, svc, err := t.ownerWith(ctx, plan.CapAIDashboard)
	if err != nil {
		return nil, dashboardOutput{}, toolError(err)
	}
	sum, err := svc.Dashboard.Summary(ctx, scope)
	if err != nil {
		return nil, dashboardOutput{}, toolError(err)
	}
	return nil, dashboardOutput{
		GeneratedAt: sum.GeneratedAt.Format(time.RFC3339),
		Today:       countsOf(sum.Today),
		Week:        countsOf(sum.Week),
		Month:       countsOf(sum.Month),
		Year:        countsOf(sum.Year),
	}, nil
}

func countsOf(p dashboard.Period) activityCounts {
	return activityCounts{
		From:             p.From.Format(time.RFC3339),
		Todos:            p.Counts.Todos,
		HabitLogs:        p.Counts.HabitLogs,
		PomodoroSessions: p.Counts.PomodoroSessions,
		JournalEntries:   p.Counts.JournalEntries,
		Notes:            p.Counts.Notes,
	}
}

func pageOf(e journal.Entry) journalPage {
	p := journalPage{
		Date:       e.EntryDate,
		Thoughts:   e.Thoughts,
		GoodThings: e.GoodThings,
		BadThings:  e.BadThings,
		Lessons:    e.Lessons,
		Dreams:     e.Dreams,
	}
	if e.Mood != nil {
		p.Mood = string(*e.Mood)
	}
	return p
}
