package notify

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"focusdo/internal/model"
)

// BuildDailySummary renders the morning overview message: open tasks
// sorted by due date, plus weekly goal progress when a goal is set.
func BuildDailySummary(tasks []model.Task, now time.Time, weeklyDone, weeklyGoal int) string {
	var pending []model.Task
	for _, t := range tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		switch {
		case pending[i].DueAt == nil && pending[j].DueAt == nil:
			return pending[i].CreatedAt.After(pending[j].CreatedAt)
		case pending[i].DueAt == nil:
			return false
		case pending[j].DueAt == nil:
			return true
		default:
			return pending[i].DueAt.Before(*pending[j].DueAt)
		}
	})

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily overview</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("Mon, Jan 2")))

	if len(pending) == 0 {
		builder.WriteString("— no open tasks\n")
	} else {
		for _, t := range pending {
			builder.WriteString(formatTaskLine(t, now))
		}
	}

	if weeklyGoal > 0 {
		builder.WriteString(fmt.Sprintf("\n🎯 Weekly goal: %d of %d done\n", weeklyDone, weeklyGoal))
	}

	return strings.TrimSpace(builder.String())
}

func formatTaskLine(t model.Task, now time.Time) string {
	var sb strings.Builder

	icon := "🟢"
	if t.Priority == model.PriorityHigh {
		icon = "🔴"
	}
	if t.DueAt != nil {
		d := t.DueAt.In(now.Location())
		switch {
		case now.After(d):
			icon = "⚠️"
		case d.Sub(now) <= 48*time.Hour:
			icon = "⏳"
		}
	}

	title := html.EscapeString(strings.TrimSpace(t.Title))
	sb.WriteString(fmt.Sprintf("%s %s", icon, title))

	if t.Category != nil && strings.TrimSpace(t.Category.Name) != "" {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(strings.TrimSpace(t.Category.Name))))
	}

	if t.DueAt != nil {
		d := t.DueAt.In(now.Location())
		if now.After(d) {
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s — <b>overdue</b>", d.Format("2006-01-02")))
		} else {
			daysLeft := int(d.Sub(now).Hours()/24) + 1
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · ≈%d days left", d.Format("2006-01-02"), daysLeft))
		}
	}

	if len(t.Subtasks) > 0 {
		done := 0
		for _, st := range t.Subtasks {
			if st.Done {
				done++
			}
		}
		sb.WriteString(fmt.Sprintf("\n   ☑️ %d/%d subtasks", done, len(t.Subtasks)))
	}

	sb.WriteByte('\n')
	return sb.String()
}
