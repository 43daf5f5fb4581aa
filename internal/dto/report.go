package dto

import "github.com/shopspring/decimal"

// SummaryReportResponse is the pipeline summary report.
type SummaryReportResponse struct {
	StatusCounts        map[string]int  `json:"statusCounts"`
	TotalClients        int             `json:"totalClients"`
	TotalEstimatedValue decimal.Decimal `json:"totalEstimatedValue"`
}

// EmployeePerformanceEntry is one employee's pipeline counts.
type EmployeePerformanceEntry struct {
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	TotalClients int             `json:"totalClients"`
	WonClients   int             `json:"wonClients"`
	LostClients  int             `json:"lostClients"`
	WonValue     decimal.Decimal `json:"wonValue"`
}

// PerformanceReportResponse is the per-employee performance report.
type PerformanceReportResponse struct {
	Performance []EmployeePerformanceEntry `json:"performance"`
}

// MonthlyRevenueEntry is one month's closed-won value.
type MonthlyRevenueEntry struct {
	Month   string          `json:"month"` // YYYY-MM
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

// RevenueReportResponse is the revenue (closed-won value) report.
type RevenueReportResponse struct {
	TotalRevenue     decimal.Decimal       `json:"totalRevenue"`
	WonCount         int                   `json:"wonCount"`
	MonthlyBreakdown []MonthlyRevenueEntry `json:"monthlyBreakdown"`
}

// EmployeeQuickStatsResponse is one user's dashboard aggregate.
type EmployeeQuickStatsResponse struct {
	TotalClients     int             `json:"totalClients"`
	CompletedTasks   int             `json:"completedTasks"`
	RecentActivities int             `json:"recentActivities"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
}

// ActivityReportResponse groups activity and task counts for the activity
// report.
type ActivityReportResponse struct {
	ActivityCounts map[string]int `json:"activityCounts"`
	TaskCounts     map[string]int `json:"taskCounts"`
	TotalDone      int            `json:"totalDone"`
	TotalPending   int            `json:"totalPending"`
}
