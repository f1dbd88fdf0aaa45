package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAge(t *testing.T) {
	facts := &ClientFinancialFacts{
		DateOfBirth: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	cases := []struct {
		at   time.Time
		want int
	}{
		{time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), 36},
		{time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC), 35},
		{time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), 36},
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 35},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, facts.Age(tc.at), "at %s", tc.at.Format("2006-01-02"))
	}
}

func TestAge_UnknownDateOfBirth(t *testing.T) {
	facts := &ClientFinancialFacts{}
	assert.Equal(t, 0, facts.Age(time.Now()))
}

func TestTotalIncome(t *testing.T) {
	facts := &ClientFinancialFacts{
		AnnualIncome:     decimal.NewFromInt(1200000),
		AdditionalIncome: decimal.NewFromInt(120000),
	}
	assert.True(t, facts.TotalIncome().Equal(decimal.NewFromInt(1320000)))
}

func TestAssetsTotal(t *testing.T) {
	assets := Assets{
		Cash:       decimal.NewFromInt(500000),
		RealEstate: decimal.NewFromInt(3000000),
		Equity: map[string]decimal.Decimal{
			"stocks":      decimal.NewFromInt(400000),
			"mutualFunds": decimal.NewFromInt(600000),
		},
		FixedIncome: map[string]decimal.Decimal{
			"ppf": decimal.NewFromInt(300000),
		},
		Other: map[string]decimal.Decimal{
			"gold": decimal.NewFromInt(200000),
		},
	}

	assert.True(t, assets.Total().Equal(decimal.NewFromInt(5000000)))
	assert.True(t, Assets{}.Total().Equal(decimal.Zero), "nil maps count as zero")
}

func TestLiabilitiesTotal(t *testing.T) {
	liabilities := Liabilities{
		Loans:       decimal.NewFromInt(1500000),
		CreditCards: decimal.NewFromInt(50000),
	}
	assert.True(t, liabilities.Total().Equal(decimal.NewFromInt(1550000)))
}

func TestGoalPriorityValid(t *testing.T) {
	for _, p := range []GoalPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical} {
		assert.True(t, p.Valid(), "%s", p)
	}
	assert.False(t, GoalPriority("urgent").Valid())
	assert.False(t, GoalPriority("").Valid())
}
