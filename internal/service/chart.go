// internal/service/chart.go
package service

import (
	"sort"
	"time"

	"fintrack/internal/domain"
)

// ChartRange selects the aggregation window for account charts.
type ChartRange string

const (
	ChartRange7D  ChartRange = "7D"
	ChartRange1M  ChartRange = "1M"
	ChartRange3M  ChartRange = "3M"
	ChartRange6M  ChartRange = "6M"
	ChartRangeAll ChartRange = "ALL"
)

// chartRangeDays maps each bounded range to its day count. ALL is unbounded.
var chartRangeDays = map[ChartRange]int{
	ChartRange7D: 7,
	ChartRange1M: 30,
	ChartRange3M: 90,
	ChartRange6M: 180,
}

// Valid reports whether the range is a known value.
func (r ChartRange) Valid() bool {
	if r == ChartRangeAll {
		return true
	}
	_, ok := chartRangeDays[r]
	return ok
}

// DailyTotal holds the income and expense accumulated on one calendar day.
type DailyTotal struct {
	Date    time.Time `json:"date"`
	Income  float64   `json:"income"`
	Expense float64   `json:"expense"`
}

// ChartData is the aggregation view over an account's transactions for a
// window: a per-day sequence ascending by date plus window-wide totals.
type ChartData struct {
	Daily        []DailyTotal `json:"daily"`
	TotalIncome  float64      `json:"total_income"`
	TotalExpense float64      `json:"total_expense"`
	Net          float64      `json:"net"`
}

// BuildChartData derives per-day income/expense totals from transactions
// within the window ending now. It is a pure function and never mutates
// its input.
func BuildChartData(transactions []domain.Transaction, rng ChartRange, now time.Time) ChartData {
	var windowStart time.Time
	if days, ok := chartRangeDays[rng]; ok {
		windowStart = startOfDay(now.AddDate(0, 0, -days))
	} else {
		windowStart = time.Unix(0, 0)
	}
	windowEnd := endOfDay(now)

	grouped := make(map[time.Time]*DailyTotal)
	var totalIncome, totalExpense float64

	for i := range transactions {
		t := &transactions[i]
		if t.Date.Before(windowStart) || t.Date.After(windowEnd) {
			continue
		}

		day := startOfDay(t.Date)
		bucket, ok := grouped[day]
		if !ok {
			bucket = &DailyTotal{Date: day}
			grouped[day] = bucket
		}

		// Window totals accumulate in the same pass as the daily buckets.
		amount := t.Amount.InexactFloat64()
		switch t.Type {
		case domain.TransactionTypeIncome:
			bucket.Income += amount
			totalIncome += amount
		case domain.TransactionTypeExpense:
			bucket.Expense += amount
			totalExpense += amount
		}
	}

	daily := make([]DailyTotal, 0, len(grouped))
	for _, bucket := range grouped {
		daily = append(daily, *bucket)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })

	return ChartData{
		Daily:        daily,
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Net:          totalIncome - totalExpense,
	}
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last nanosecond of t's calendar day.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
