package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `everday exposes one account's daily-life tracker to an assistant.

Tools (read only):
- habit_board: every active habit with current streak, best streak and today's status.
- plan_status: the account's plan and which premium capabilities it unlocks.
- recent_notes: the newest notes, limit defaults to 10.
- journal_month: journal pages of one month, defaults to the current month.
- ai_dashboard: records created today, this week (from Monday), this month and this year.

Every tool needs a plus or pro plan. On a free plan the tool fails with UPGRADE_REQUIRED;
tell the user instead of retrying.

Docs:
- everday://docs/streaks (how streaks are counted)
- everday://docs/plans (free-tier ceilings and premium capabilities)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "everday://docs/streaks",
		Name:        "docs_streaks",
		Title:       "How streaks are counted",
		Description: "Day statuses, current streak walk and the best streak ratchet.",
		Content: `# Streaks

Each habit day has one status:

- not_applicable: before the habit was created.
- completed / failed: logged explicitly.
- failed: a past day with no log.
- pending: today with no log yet.

The current streak walks back from today and counts completed days. It stops at the
first failed day or the creation date. An unlogged today stops the walk without counting,
so yesterday's run shows only once today is logged.

The best streak never goes down. When a current streak beats it the new value is stored.
`,
	},
	{
		URI:         "everday://docs/plans",
		Name:        "docs_plans",
		Title:       "Plans and limits",
		Description: "Free-tier item ceilings and premium-only capabilities.",
		Content: `# Plans

Tiers: free < plus < pro. Plus and pro are premium.

Free ceilings: 7 habits, 15 notes, 10 tasks, 5 yearly goals, 5 monthly goals,
7 items per reading or watch shelf, 7 source dumps. Journal pages are unlimited.

Premium only: card colors, streak display, usage reports, AI dashboard, AI chat,
screenshot attachments.

A downgrade never deletes data. Items over a ceiling stay readable and editable,
only new items are refused.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
