// Package output renders the engine's outbound data contracts for the
// terminal. Formatting and styling only; all numbers arrive pre-computed.
package output

import (
	"fmt"
	"strings"

	"github.com/advisorhq/planengine/internal/compare"
	"github.com/advisorhq/planengine/internal/domain"
	"github.com/advisorhq/planengine/internal/format"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// HealthReport bundles everything the calculate command renders.
type HealthReport struct {
	ClientName  string
	Summary     domain.FinancialSummary
	NetWorth    domain.NetWorthSummary
	Retirement  domain.RetirementProjection
	Goals       []GoalLine
	HealthScore domain.HealthScore
}

// GoalLine pairs a goal with its feasibility verdict.
type GoalLine struct {
	Goal        domain.Goal
	Feasibility domain.GoalFeasibility
}

// RenderHealthReport renders the complete client financial health report.
func RenderHealthReport(r HealthReport) string {
	var b strings.Builder

	title := "Financial Health Report"
	if r.ClientName != "" {
		title += " — " + r.ClientName
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	b.WriteString(sectionStyle.Render("Cash Flow") + "\n")
	writeLine(&b, "Monthly income", format.Amount(r.Summary.MonthlyIncome), false)
	writeLine(&b, "Monthly expenses", format.Amount(r.Summary.TotalMonthlyExpenses), false)
	writeLine(&b, "Monthly savings", format.Amount(r.Summary.MonthlySavings), r.Summary.MonthlySavings.IsNegative())
	writeLine(&b, "Savings rate", format.Percent(r.Summary.SavingsRate), r.Summary.SavingsRate.IsNegative())
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Net Worth") + "\n")
	writeLine(&b, "Total assets", format.Amount(r.NetWorth.TotalAssets), false)
	writeLine(&b, "Total liabilities", format.Amount(r.NetWorth.TotalLiabilities), false)
	writeLine(&b, "Net worth", format.Amount(r.NetWorth.NetWorth), r.NetWorth.NetWorth.IsNegative())
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Retirement") + "\n")
	writeLine(&b, "Years to retirement", fmt.Sprintf("%d", r.Retirement.YearsToRetirement), false)
	writeLine(&b, "Future monthly expenses", format.Amount(r.Retirement.FutureMonthlyExpenses), false)
	writeLine(&b, "Required corpus", format.Amount(r.Retirement.RequiredCorpus)+" ("+format.Compact(r.Retirement.RequiredCorpus)+")", false)
	b.WriteString("\n")

	if len(r.Goals) > 0 {
		b.WriteString(sectionStyle.Render("Goals") + "\n")
		for _, line := range r.Goals {
			b.WriteString(renderGoal(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Health Score") + "\n")
	writeLine(&b, "Savings rate", fmt.Sprintf("%d / 30", r.HealthScore.SavingsRatePoints), false)
	writeLine(&b, "Net worth", fmt.Sprintf("%d / 25", r.HealthScore.NetWorthPoints), false)
	writeLine(&b, "Diversification", fmt.Sprintf("%d / 20", r.HealthScore.DiversificationPoints), false)
	writeLine(&b, "Debt management", fmt.Sprintf("%d / 25", r.HealthScore.DebtManagementPoints), false)
	writeLine(&b, "Total", fmt.Sprintf("%d / 100", r.HealthScore.Total), false)

	return b.String()
}

func renderGoal(line GoalLine) string {
	verdict := positiveStyle.Render("feasible")
	if !line.Feasibility.Feasible {
		verdict = negativeStyle.Render("not feasible")
	}

	out := fmt.Sprintf("  %s (%s by %d): %s",
		line.Goal.GoalName,
		format.Compact(line.Goal.TargetAmount),
		line.Goal.TargetYear,
		verdict)

	if line.Feasibility.Reason != "" {
		out += mutedStyle.Render(" — " + line.Feasibility.Reason)
	} else {
		out += mutedStyle.Render(fmt.Sprintf(" — requires %s/mo of %s/mo capacity",
			format.Amount(line.Feasibility.RequiredMonthlySIP),
			format.Amount(line.Feasibility.AvailableCapacity)))
	}
	return out + "\n"
}

// RenderComparison renders a comparison record with whatever lifecycle data
// it carries so far.
func RenderComparison(c *domain.Comparison) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Comparison "+c.ID) + "\n")
	writeLine(&b, "Type", c.ComparisonType, false)
	writeLine(&b, "State", string(c.State), false)
	writeLine(&b, "Created", c.CreatedAt.Format("2006-01-02 15:04"), false)
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Plans") + "\n")
	b.WriteString(renderPlan("Plan A", c.PlanA))
	b.WriteString(renderPlan("Plan B", c.PlanB))

	if c.AIAnalysis != nil {
		b.WriteString("\n" + sectionStyle.Render("AI Analysis") + "\n")
		writeLine(&b, "Suggested", compare.RecommendationLabel(c, c.AIAnalysis.Recommendation.SuggestedPlan), false)
		writeLine(&b, "Confidence", format.Percent(c.AIAnalysis.Recommendation.ConfidenceScore.Mul(decimal.NewFromInt(100))), false)
		if c.AIAnalysis.ExecutiveSummary != "" {
			b.WriteString("  " + mutedStyle.Render(c.AIAnalysis.ExecutiveSummary) + "\n")
		}
		for _, diff := range c.AIAnalysis.KeyDifferences {
			b.WriteString("  - " + diff + "\n")
		}
	}

	if c.SelectedWinner != nil {
		b.WriteString("\n" + sectionStyle.Render("Decision") + "\n")
		writeLine(&b, "Winner", compare.WinnerLabel(c, c.SelectedWinner.Plan), false)
		writeLine(&b, "Reason", c.SelectedWinner.Reason, false)
		writeLine(&b, "Decided", c.SelectedWinner.SelectedAt.Format("2006-01-02 15:04"), false)
	}

	return b.String()
}

func renderPlan(side string, plan domain.PlanSnapshot) string {
	return fmt.Sprintf("  %s: %s v%d — net worth %s, savings rate %s, surplus %s/mo\n",
		side, plan.PlanID, plan.Version,
		format.Compact(plan.KeyMetrics.NetWorth),
		format.Percent(plan.KeyMetrics.SavingsRate),
		format.Amount(plan.KeyMetrics.MonthlySurplus))
}

func writeLine(b *strings.Builder, label, value string, negative bool) {
	rendered := value
	if negative {
		rendered = negativeStyle.Render(value)
	}
	fmt.Fprintf(b, "  %s %s\n", labelStyle.Render(label+":"), rendered)
}
