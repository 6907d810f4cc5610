package profile

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/aminoacids/internal/application"
	"github.com/charmbracelet/lipgloss"
)

// maxLevel is the highest community level.
const maxLevel = 20

type RenderOptions struct {
	Now time.Time
}

func RenderAccount(view application.AccountView, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		rows := []string{
			s.name.Render(titleFor(view.Nickname, view.UID)),
			row(s, "amino id", orNone(view.AminoID)),
			row(s, "email", orNone(view.Email)+" "+flag(s, view.EmailActivated, "verified", "unverified")),
		}
		if view.PhoneNumber != "" {
			rows = append(rows, row(s, "phone", view.PhoneNumber+" "+flag(s, view.PhoneActivated, "verified", "unverified")))
		}
		rows = append(rows, row(s, "created", formatAge(view.Created, opts.Now)))
		if view.Icon != "" {
			rows = append(rows, row(s, "icon", s.meta.Render(view.Icon)))
		}

		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	})
}

func RenderCommunity(view application.CommunityView, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		rows := []string{
			s.name.Render(titleFor(view.Name, view.ID)),
		}
		if view.Tagline != "" {
			rows = append(rows, s.meta.Render(view.Tagline))
		}
		rows = append(rows,
			row(s, "endpoint", orNone(view.Endpoint)),
			row(s, "link", orNone(view.Link)),
			row(s, "members", compactCount(view.MemberCount)),
			row(s, "heat", heatBar(view.HeatLevel, 24, s)+" "+s.meta.Render(fmt.Sprintf("%.1f", view.HeatLevel))),
			row(s, "language", orNone(view.PrimaryLanguage)),
			row(s, "searchable", flag(s, view.Searchable, "yes", "no")),
			row(s, "created", formatAge(view.Created, opts.Now)),
		)
		if len(view.Keywords) > 0 {
			rows = append(rows, row(s, "keywords", strings.Join(view.Keywords, ", ")))
		}
		if len(view.Aliases) > 0 {
			rows = append(rows, row(s, "aliases", strings.Join(view.Aliases, ", ")))
		}

		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	})
}

func RenderUser(view application.UserView, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		rows := []string{
			s.name.Render(titleFor(view.Nickname, view.UID)),
		}
		if view.AminoID != "" {
			rows = append(rows, row(s, "amino id", view.AminoID))
		}
		if view.Community != "" {
			rows = append(rows,
				row(s, "community", view.Community),
				row(s, "level", levelLabel(view.Level)),
				row(s, "reputation", compactCount(view.Reputation)),
				row(s, "check-ins", fmt.Sprintf("%d day streak", view.CheckInStreak)),
			)
		}
		rows = append(rows,
			row(s, "posts", fmt.Sprintf("%d (%d blogs)", view.PostCount, view.BlogCount)),
			row(s, "comments", fmt.Sprintf("%d", view.CommentCount)),
			row(s, "created", formatAge(view.Created, opts.Now)),
		)

		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	})
}

func RenderCommunities(title string, communities []application.CommunitySummary) (string, error) {
	return run(func(s styles) string {
		lines := []string{
			s.title.Render(title),
			s.header.Render(fmt.Sprintf("communities: %d", len(communities))),
		}
		if len(communities) == 0 {
			lines = append(lines, s.empty.Render("No communities."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		for _, c := range communities {
			lines = append(lines, lipgloss.JoinHorizontal(
				lipgloss.Top,
				s.name.Render(titleFor(c.Name, c.ID)),
				" ",
				s.meta.Render(fmt.Sprintf("/c/%s, %s members", c.Endpoint, compactCount(c.MemberCount))),
			))
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

func RenderUsers(title string, users []application.UserSummary) (string, error) {
	return run(func(s styles) string {
		lines := []string{
			s.title.Render(title),
			s.header.Render(fmt.Sprintf("users: %d", len(users))),
		}
		if len(users) == 0 {
			lines = append(lines, s.empty.Render("No users."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		for _, u := range users {
			levelStyle := lipgloss.NewStyle().Foreground(interpolateColor(float64(u.Level), 0, maxLevel))
			lines = append(lines, lipgloss.JoinHorizontal(
				lipgloss.Top,
				s.name.Render(titleFor(u.Nickname, u.UID)),
				" ",
				levelStyle.Render(levelLabel(u.Level)),
				" ",
				s.meta.Render(compactCount(u.Reputation)+" rep"),
			))
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

func RenderBlogs(title string, blogs []application.BlogView, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		lines := []string{
			s.title.Render(title),
			s.header.Render(fmt.Sprintf("blogs: %d", len(blogs))),
		}
		if len(blogs) == 0 {
			lines = append(lines, s.empty.Render("No blogs."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		for _, b := range blogs {
			meta := fmt.Sprintf("%d likes, %d comments, %s", b.Likes, b.Comments, formatAge(b.Created, opts.Now))
			if len(b.Media) > 0 {
				meta += fmt.Sprintf(", %d media", len(b.Media))
			}
			parts := []string{s.name.Render(titleFor(b.Title, b.ID))}
			if b.Author != "" {
				parts = append(parts, s.value.Render("by "+b.Author))
			}
			parts = append(parts, s.meta.Render(meta))
			lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

func row(s styles, label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(label), s.value.Render(value))
}

func flag(s styles, on bool, yes, no string) string {
	if on {
		return s.flagOn.Render(yes)
	}
	return s.flagOff.Render(no)
}

func titleFor(name, id string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return id
	}
	if id == "" {
		return trimmed
	}
	return fmt.Sprintf("%s (%s)", trimmed, id)
}

func orNone(v string) string {
	if strings.TrimSpace(v) == "" {
		return "none"
	}
	return v
}

func compactCount(v int64) string {
	if v < 1_000 {
		return fmt.Sprintf("%d", v)
	}

	if v < 1_000_000 {
		return fmt.Sprintf("%.1fk", float64(v)/1_000)
	}

	return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
}

func levelLabel(level int64) string {
	return fmt.Sprintf("lv%d", level)
}

func heatBar(heat float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(heat) / 100.0))
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatAge(created, now time.Time) string {
	if created.IsZero() {
		return "unknown"
	}

	date := created.Format("02 Jan 2006")
	if now.IsZero() || created.After(now) {
		return date
	}

	elapsed := now.Sub(created)
	days := int(elapsed.Hours() / 24)
	switch {
	case days < 1:
		return date + " (today)"
	case days < 365:
		return fmt.Sprintf("%s (%d %s ago)", date, days, plural(days, "day"))
	default:
		years := days / 365
		return fmt.Sprintf("%s (%d %s ago)", date, years, plural(years, "year"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
