// Package render turns opportunities, assessments and profile entries into
// terminal output. Every badge, drawer and table consults the assessment
// freshness and score bands; nothing here compares versions itself.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/honeycarbs/jobfit/internal/appstate"
	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/internal/opportunity"
)

const noAssessment = "No assessment"

type palette struct {
	excellent func(a ...any) string
	good      func(a ...any) string
	poor      func(a ...any) string
	alert     func(a ...any) string
	muted     func(a ...any) string
}

// Renderer formats output for one theme
type Renderer struct {
	p palette
}

// New creates a renderer for the theme
func New(theme appstate.Theme) *Renderer {
	if theme == appstate.ThemeDark {
		return &Renderer{p: palette{
			excellent: pterm.LightGreen,
			good:      pterm.LightYellow,
			poor:      pterm.LightRed,
			alert:     pterm.LightRed,
			muted:     pterm.LightWhite,
		}}
	}
	return &Renderer{p: palette{
		excellent: pterm.Green,
		good:      pterm.Yellow,
		poor:      pterm.Red,
		alert:     pterm.Red,
		muted:     pterm.Gray,
	}}
}

func (r *Renderer) band(score int) func(a ...any) string {
	switch assessment.ClassifyScore(score) {
	case assessment.BandExcellent:
		return r.p.excellent
	case assessment.BandGood:
		return r.p.good
	default:
		return r.p.poor
	}
}

// Badge is the compact score marker shown in lists
func (r *Renderer) Badge(e assessment.Entry, f assessment.Freshness, pending bool) string {
	if pending {
		return r.p.muted("generating…")
	}

	a := e.Assessment()
	if a == nil {
		return r.p.muted(noAssessment)
	}

	badge := r.band(a.FitScore)(fmt.Sprintf("%d/7", a.FitScore))
	if f == assessment.FreshnessOutdated {
		badge += " " + r.p.alert("● outdated")
	}
	return badge
}

// Drawer renders the detailed view of one assessment
func (r *Renderer) Drawer(opp *domain.Opportunity, a domain.JobAssessment, f assessment.Freshness) string {
	band := assessment.ClassifyScore(a.FitScore)

	var b strings.Builder
	fmt.Fprintf(&b, "Fit score:      %s\n", r.band(a.FitScore)(fmt.Sprintf("%d/7 (%s)", a.FitScore, band.Label())))
	if f == assessment.FreshnessOutdated {
		fmt.Fprintf(&b, "%s\n", r.p.alert(fmt.Sprintf("Outdated: computed against profile version %d", a.ProfileVersion)))
	} else {
		fmt.Fprintf(&b, "Profile:        version %d\n", a.ProfileVersion)
	}
	fmt.Fprintf(&b, "Assessed:       %s\n", assessedOn(a))
	b.WriteString("\nSummary of fit\n")
	b.WriteString(wrap(a.SummaryOfFit, 72))
	b.WriteString("\n\nRecommendation\n")
	b.WriteString(wrap(a.Recommendation, 72))

	title := fmt.Sprintf("Assessment #%d", a.ID)
	if opp != nil {
		title = fmt.Sprintf("%s @ %s", opp.Title, opp.Company)
	}

	return pterm.DefaultBox.WithTitle(title).Sprint(b.String())
}

// NoAssessment is the empty drawer state
func (r *Renderer) NoAssessment(id domain.OpportunityID) string {
	return r.p.muted(fmt.Sprintf("No assessment for opportunity %d.", id))
}

// Opportunities renders the opportunity list with badges
func (r *Renderer) Opportunities(rows []opportunity.Row) (string, error) {
	if len(rows) == 0 {
		return r.p.muted("No opportunities yet."), nil
	}

	data := pterm.TableData{{"ID", "Title", "Company", "Level", "Salary", "Status", "Fit"}}
	var errs []string
	for _, row := range rows {
		o := row.Opportunity
		fit := r.Badge(row.Entry, row.Freshness, row.Pending)
		if row.Err != nil {
			fit = r.p.alert("error")
			errs = append(errs, fmt.Sprintf("#%d: %v", o.ID, row.Err))
		}
		data = append(data, []string{
			strconv.FormatInt(o.ID, 10),
			o.Title,
			o.Company,
			deref(o.Level),
			SalaryRange(o.MinSalary, o.MaxSalary),
			string(o.Status),
			fit,
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", fmt.Errorf("render opportunities: %w", err)
	}
	for _, e := range errs {
		out += "\n" + r.Error(e)
	}
	return out, nil
}

// Assessments renders a flat assessment list
func (r *Renderer) Assessments(list []domain.JobAssessment, currentVersion int) (string, error) {
	if len(list) == 0 {
		return r.p.muted("No assessments."), nil
	}

	data := pterm.TableData{{"ID", "Opportunity", "Fit", "Band", "Profile version", "Updated"}}
	for _, a := range list {
		e := assessment.EntryFor(&a)
		f := assessment.Evaluate(e, currentVersion)
		data = append(data, []string{
			strconv.FormatInt(a.ID, 10),
			strconv.FormatInt(a.OpportunityID, 10),
			r.Badge(e, f, false),
			assessment.ClassifyScore(a.FitScore).Label(),
			strconv.Itoa(a.ProfileVersion),
			since(a.UpdatedAt),
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", fmt.Errorf("render assessments: %w", err)
	}
	return out, nil
}

// Profile renders profile entries grouped in order
func (r *Renderer) Profile(p domain.Profile) string {
	if len(p.Entries) == 0 {
		return r.p.muted("Profile is empty.")
	}

	var b strings.Builder
	for i, e := range p.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  [%s] %s\n", r.p.muted(e.ID), e.Type, heading(e))
		if span := dateSpan(e); span != "" {
			fmt.Fprintf(&b, "    %s\n", r.p.muted(span))
		}
		for _, n := range e.KeyNotes {
			fmt.Fprintf(&b, "    • %s\n", n)
		}
	}
	return b.String()
}

// Error is an inline, dismissible failure message
func (r *Renderer) Error(msg string) string {
	return r.p.alert("✗ " + msg)
}

// Success is an inline confirmation
func (r *Renderer) Success(msg string) string {
	return r.p.excellent("✓ " + msg)
}

// SalaryRange formats optional bounds, e.g. "$120,000 – $150,000"
func SalaryRange(minSalary, maxSalary *int) string {
	switch {
	case minSalary == nil && maxSalary == nil:
		return ""
	case minSalary == nil:
		return "up to $" + humanize.Comma(int64(*maxSalary))
	case maxSalary == nil:
		return "from $" + humanize.Comma(int64(*minSalary))
	default:
		return "$" + humanize.Comma(int64(*minSalary)) + " – $" + humanize.Comma(int64(*maxSalary))
	}
}

func assessedOn(a domain.JobAssessment) string {
	if !a.UpdatedAt.IsZero() {
		return a.UpdatedAt.Format("2006-01-02 15:04") + " (" + humanize.Time(a.UpdatedAt.Time) + ")"
	}
	if a.AssessmentDate != "" {
		return a.AssessmentDate
	}
	return "unknown"
}

func since(t domain.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t.Time)
}

func heading(e domain.ProfileEntry) string {
	parts := make([]string, 0, 2)
	if t := deref(e.Title); t != "" {
		parts = append(parts, t)
	}
	if o := deref(e.Organization); o != "" {
		parts = append(parts, o)
	}
	return strings.Join(parts, " — ")
}

func dateSpan(e domain.ProfileEntry) string {
	start, end := deref(e.StartDate), deref(e.EndDate)
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " – present"
	default:
		return start + " – " + end
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
