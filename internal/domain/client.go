package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientFinancialFacts is a snapshot of one client's self-reported finances.
// All monetary leaf values are non-negative; absent values mean zero. A facts
// object is always replaced whole, never patched field by field.
type ClientFinancialFacts struct {
	ClientID         string                     `yaml:"client_id" json:"clientId"`
	Name             string                     `yaml:"name,omitempty" json:"name,omitempty"`
	AnnualIncome     decimal.Decimal            `yaml:"annual_income" json:"annualIncome"`
	AdditionalIncome decimal.Decimal            `yaml:"additional_income" json:"additionalIncome"`
	MonthlyExpenses  map[string]decimal.Decimal `yaml:"monthly_expenses" json:"monthlyExpenses"`
	Assets           Assets                     `yaml:"assets" json:"assets"`
	Liabilities      Liabilities                `yaml:"liabilities" json:"liabilities"`
	DateOfBirth      time.Time                  `yaml:"date_of_birth" json:"dateOfBirth"`
}

// Assets holds the nested asset structure. The named holdings maps carry one
// entry per instrument; each leaf value contributes to totals exactly once.
type Assets struct {
	Cash        decimal.Decimal            `yaml:"cash" json:"cash"`
	RealEstate  decimal.Decimal            `yaml:"real_estate" json:"realEstate"`
	Equity      map[string]decimal.Decimal `yaml:"equity" json:"equity"`
	FixedIncome map[string]decimal.Decimal `yaml:"fixed_income" json:"fixedIncome"`
	Other       map[string]decimal.Decimal `yaml:"other" json:"other"`
}

// Liabilities holds outstanding debt by category.
type Liabilities struct {
	Loans       decimal.Decimal `yaml:"loans" json:"loans"`
	CreditCards decimal.Decimal `yaml:"credit_cards" json:"creditCards"`
}

// GoalPriority ranks a goal's importance to the client.
type GoalPriority string

const (
	PriorityLow      GoalPriority = "low"
	PriorityMedium   GoalPriority = "medium"
	PriorityHigh     GoalPriority = "high"
	PriorityCritical GoalPriority = "critical"
)

// Valid reports whether the priority is one of the four supported levels.
func (p GoalPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Goal is a client savings target tied to a calendar year.
type Goal struct {
	GoalName     string          `yaml:"goal_name" json:"goalName"`
	TargetAmount decimal.Decimal `yaml:"target_amount" json:"targetAmount"`
	TargetYear   int             `yaml:"target_year" json:"targetYear"`
	Priority     GoalPriority    `yaml:"priority" json:"priority"`
}

// Age calculates the client's age at a given date.
func (c *ClientFinancialFacts) Age(atDate time.Time) int {
	if c.DateOfBirth.IsZero() {
		return 0
	}
	age := atDate.Year() - c.DateOfBirth.Year()
	if atDate.YearDay() < c.DateOfBirth.YearDay() {
		age--
	}
	return age
}

// TotalIncome returns combined annual income from all sources.
func (c *ClientFinancialFacts) TotalIncome() decimal.Decimal {
	return c.AnnualIncome.Add(c.AdditionalIncome)
}

// Total sums every leaf value in the asset structure exactly once.
// Nil holdings maps count as zero.
func (a Assets) Total() decimal.Decimal {
	total := a.Cash.Add(a.RealEstate)
	for _, v := range a.Equity {
		total = total.Add(v)
	}
	for _, v := range a.FixedIncome {
		total = total.Add(v)
	}
	for _, v := range a.Other {
		total = total.Add(v)
	}
	return total
}

// Total returns combined outstanding debt.
func (l Liabilities) Total() decimal.Decimal {
	return l.Loans.Add(l.CreditCards)
}
