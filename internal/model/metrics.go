package model

import "time"

// Severity grades the 90-day obligation risk.
type Severity string

// Severity levels.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Trend labels payment discipline.
type Trend string

// Trends.
const (
	TrendImproving Trend = "improving"
	TrendSteady    Trend = "steady"
	TrendDeclining Trend = "declining"
)

// PressureBand labels the composite cash-pressure score.
type PressureBand string

// Pressure bands.
const (
	PressureStable      PressureBand = "stable"
	PressureMedium      PressureBand = "medium_pressure"
	PressureHigh        PressureBand = "high_pressure"
	PressureOperational PressureBand = "operational_risk"
)

// BurnRate is the monthly total of priced monthly obligations.
type BurnRate struct {
	MonthlyTotal float64
	Count        int
}

// BurnBundle extrapolates the monthly burn linearly.
type BurnBundle struct {
	Monthly   float64
	NinetyDay float64
	Yearly    float64
	Count     int
}

// NinetyDayRisk compares 90-day dues against three months of burn.
type NinetyDayRisk struct {
	DueTotal float64
	Baseline float64
	Ratio    float64
	Level    Severity
}

// Discipline compares obligations due with payments recorded.
type Discipline struct {
	WindowDays int
	Due        int
	Paid       int
	Ratio      float64
	Trend      Trend
}

// CashPressure is the 0-100 composite score, higher is worse.
type CashPressure struct {
	Score             int
	Band              PressureBand
	UnpricedRatio     float64
	OverdueRatio      float64
	HighRiskUnpriced  bool
	DisciplinePenalty float64
}

// RadarReport bundles every risk radar signal for one ledger.
type RadarReport struct {
	Burn        BurnRate
	Bundle      BurnBundle
	NinetyDay   NinetyDayRisk
	Discipline  Discipline
	HighRisk    bool
	Pressure    CashPressure
	GeneratedAt time.Time
}

// PlanWindow totals priced obligations due within Days of today.
type PlanWindow struct {
	Days             int
	Count            int
	Total            float64
	ByCategory       map[Category]float64
	RequiredTotal    float64
	HighRiskTotal    float64
	SavingsIfSnoozed float64
}

// PlanCounts are ledger-wide pricing counts.
type PlanCounts struct {
	Priced                   int
	Unpriced                 int
	RequiredUnpriced         int
	HighRiskRequiredUnpriced int
	SeededUnpriced           int
}

// CashPlan is the time-bucketed view of upcoming obligations.
type CashPlan struct {
	Today        PlanWindow
	Week         PlanWindow
	Month        PlanWindow
	OverdueTotal float64
	Counts       PlanCounts
}

// InboxReason names the rule that surfaced an inbox entry.
type InboxReason string

// Inbox reasons, highest priority first.
const (
	ReasonOverdueHighRisk          InboxReason = "overdue_high_risk"
	ReasonOverdue                  InboxReason = "overdue"
	ReasonRequiredHighRiskUnpriced InboxReason = "required_high_risk_unpriced"
	ReasonRequiredUnpriced         InboxReason = "required_unpriced"
	ReasonDue7                     InboxReason = "due_7d"
	ReasonDue14                    InboxReason = "due_14d"
)

// InboxEntry is one actionable row in the daily inbox.
type InboxEntry struct {
	Item     RecurringItem
	Reason   InboxReason
	Priority int
	DueIn    int
	HasDue   bool
}

// ComplianceStatus labels the compliance score.
type ComplianceStatus string

// Compliance statuses.
const (
	Compliant      ComplianceStatus = "compliant"
	NeedsAttention ComplianceStatus = "needs_attention"
	SystemicRisk   ComplianceStatus = "systemic_risk"
)

// ComplianceDriver attributes a score deduction to an obligation.
type ComplianceDriver struct {
	ItemID string
	Title  string
	Reason string
	Weight int
}

// Compliance is the scored compliance status of a ledger.
type Compliance struct {
	Score         int
	Status        ComplianceStatus
	SystemOverdue bool
	Drivers       []ComplianceDriver
}

// RunRate is the monthly-equivalent spend per category.
type RunRate struct {
	Total      float64
	ByCategory map[Category]float64
}

// ForecastMonth is one projected calendar month.
type ForecastMonth struct {
	Month       time.Time
	Key         string
	Total       float64
	ByCategory  map[Category]float64
	TopCategory Category
	Note        string
}

// GapMonth is one step of the cumulative cash walk.
type GapMonth struct {
	Key        string
	Inflow     float64
	Outflow    float64
	Net        float64
	Cumulative float64
}

// CashGap is the result of walking a forecast against a constant inflow.
type CashGap struct {
	Inflow            float64
	Months            []GapMonth
	FirstDeficitMonth string
	MaxDeficit        float64
}

// HasDeficit reports whether the cumulative walk ever went negative.
func (g CashGap) HasDeficit() bool {
	return g.FirstDeficitMonth != ""
}

// MonthFigures is income and expense for one month key.
type MonthFigures struct {
	Key               string
	Income            float64
	Expense           float64
	Net               float64
	ExpenseByCategory map[Category]float64
}

// MonthVariance is actual minus expected for one month.
type MonthVariance struct {
	Key           string
	Actual        MonthFigures
	Expected      MonthFigures
	IncomeDelta   float64
	ExpenseDelta  float64
	NetDelta      float64
	CategoryDelta map[Category]float64
	Reasons       []string
}

// BudgetStatus labels budget health.
type BudgetStatus string

// Budget statuses.
const (
	BudgetNeutral BudgetStatus = "neutral"
	BudgetGood    BudgetStatus = "good"
	BudgetWarn    BudgetStatus = "warn"
	BudgetDanger  BudgetStatus = "danger"
)

// BudgetHorizon compares actual spend to one target.
// Ratio is nil when no target is set.
type BudgetHorizon struct {
	Target float64
	Actual float64
	Gap    float64
	Ratio  *float64
}

// BudgetHealth evaluates monthly and yearly targets together.
type BudgetHealth struct {
	Monthly BudgetHorizon
	Yearly  BudgetHorizon
	Status  BudgetStatus
}
