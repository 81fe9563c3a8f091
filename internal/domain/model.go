// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ─── Timestamps ─────────────────────────────────────────────────────────────

// Timestamp is the store-native time value: UTC, millisecond precision.
// It marshals to epoch milliseconds, which is how the document store
// persists it inside the per-user JSON document. The transfer codec is
// the only place timestamps appear as ISO-8601 strings.
type Timestamp struct {
	time.Time
}

// NewTimestamp creates a Timestamp from t, normalized to UTC milliseconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Millisecond)}
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

// Millis returns the epoch-millisecond representation.
func (t Timestamp) Millis() int64 {
	return t.UnixMilli()
}

// ISO formats the timestamp as a strict ISO-8601 UTC string
// (YYYY-MM-DDThh:mm:ss.sssZ), the export wire form.
func (t Timestamp) ISO() string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// MarshalJSON encodes the timestamp as epoch milliseconds.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

// UnmarshalJSON decodes an epoch-millisecond number.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("timestamp must be epoch milliseconds: %w", err)
	}
	*t = Timestamp{time.UnixMilli(ms).UTC()}
	return nil
}

// ─── Aggregate State ────────────────────────────────────────────────────────

// AppState is the whole per-user aggregate document. The document store
// is the sole writer of record; mutators re-fetch it before every
// read-modify-write (the starred-quote mutator excepted).
type AppState struct {
	ActiveGoalID *string         `json:"activeGoalId"`
	Goals        map[string]Goal `json:"goals"`
	Profile      Profile         `json:"profile"`
}

// Profile holds the user-editable display fields of the document.
type Profile struct {
	DisplayName string     `json:"displayName,omitempty"`
	PhotoURL    string     `json:"photoURL,omitempty"`
	UpdatedAt   *Timestamp `json:"updatedAt,omitempty"`
}

// GoalStatus is the lifecycle state of a goal.
type GoalStatus int

const (
	StatusNotStarted GoalStatus = iota
	StatusActive
	StatusCompleted
	StatusPaused
)

// Goal is the unit every mutator addresses by id. Each sub-list lives
// nested inside it; the whole list is the unit of write.
type Goal struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	Description   string                   `json:"description"`
	StartDate     Timestamp                `json:"startDate"`
	EndDate       Timestamp                `json:"endDate"`
	Status        GoalStatus               `json:"status"`
	DailyProgress map[string]DailyProgress `json:"dailyProgress"`
	ToDoList      []TodoItem               `json:"toDoList"`
	NotToDoList   []DistractionItem        `json:"notToDoList"`
	StickyNotes   []StickyNote             `json:"stickyNotes"`
	StarredQuotes []int64                  `json:"starredQuotes"`
	FinanceData   *FinanceData             `json:"financeData"`
	CreatedAt     Timestamp                `json:"createdAt"`
	UpdatedAt     Timestamp                `json:"updatedAt"`
}

// DailyProgress records one day's check-in, keyed by YYYY-MM-DD.
type DailyProgress struct {
	Date         string `json:"date"`
	Satisfaction int    `json:"satisfaction"`
	Notes        string `json:"notes,omitempty"`
}

// ─── Sub-list Items ─────────────────────────────────────────────────────────

// TodoItem is an ordered task. Order is contiguous from 0 across the
// list at all times; new items enter at the head.
type TodoItem struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Description string     `json:"description"`
	Order       int        `json:"order"`
	Completed   bool       `json:"completed"`
	CompletedAt *Timestamp `json:"completedAt"`
	Deadline    *Timestamp `json:"deadline"`
	CreatedAt   Timestamp  `json:"createdAt"`
	UpdatedAt   Timestamp  `json:"updatedAt"`
}

// ItemID implements the list item contract.
func (t TodoItem) ItemID() string { return t.ID }

// DistractionItem is a "what not to do" entry with an occurrence count.
type DistractionItem struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	TriggerPatterns []string  `json:"triggerPatterns"`
	Count           int       `json:"count"`
	CreatedAt       Timestamp `json:"createdAt"`
	UpdatedAt       Timestamp `json:"updatedAt"`
}

// ItemID implements the list item contract.
func (d DistractionItem) ItemID() string { return d.ID }

// NoteColor is the sticky note color enum.
type NoteColor string

const (
	NoteYellow NoteColor = "yellow"
	NoteBlue   NoteColor = "blue"
	NoteGreen  NoteColor = "green"
	NotePink   NoteColor = "pink"
	NotePurple NoteColor = "purple"
	NoteOrange NoteColor = "orange"
)

// StickyNote is a free-form note pinned to a goal.
type StickyNote struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     NoteColor `json:"color"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// ItemID implements the list item contract.
func (n StickyNote) ItemID() string { return n.ID }

// ─── Finance ────────────────────────────────────────────────────────────────

// FinanceData groups the money-tracking sub-lists nested under a goal.
// It is nil until the first finance mutation creates it.
type FinanceData struct {
	Subscriptions []Subscription `json:"subscriptions"`
	Assets        []Asset        `json:"assets"`
	Liabilities   []Liability    `json:"liabilities"`
}

// BillingCycle is the subscription renewal period.
type BillingCycle string

const (
	CycleWeekly    BillingCycle = "weekly"
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleYearly    BillingCycle = "yearly"
)

// Subscription is a recurring charge tracked under a goal's finances.
type Subscription struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Amount          float64      `json:"amount"`
	BillingCycle    BillingCycle `json:"billingCycle"`
	NextBillingDate *Timestamp   `json:"nextBillingDate"`
	Notes           string       `json:"notes,omitempty"`
	CreatedAt       Timestamp    `json:"createdAt"`
	UpdatedAt       Timestamp    `json:"updatedAt"`
}

// ItemID implements the list item contract.
func (s Subscription) ItemID() string { return s.ID }

// AssetType classifies an asset entry.
type AssetType string

const (
	AssetCash       AssetType = "cash"
	AssetInvestment AssetType = "investment"
	AssetProperty   AssetType = "property"
	AssetOther      AssetType = "other"
)

// Asset is something the user owns.
type Asset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Type      AssetType `json:"type"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// ItemID implements the list item contract.
func (a Asset) ItemID() string { return a.ID }

// LiabilityType classifies a liability entry.
type LiabilityType string

const (
	LiabilityLoan       LiabilityType = "loan"
	LiabilityCreditCard LiabilityType = "credit-card"
	LiabilityMortgage   LiabilityType = "mortgage"
	LiabilityOther      LiabilityType = "other"
)

// Liability is something the user owes.
type Liability struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Amount    float64       `json:"amount"`
	Type      LiabilityType `json:"type"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt Timestamp     `json:"createdAt"`
	UpdatedAt Timestamp     `json:"updatedAt"`
}

// ItemID implements the list item contract.
func (l Liability) ItemID() string { return l.ID }

// ─── Utilities ──────────────────────────────────────────────────────────────

// NewAppState returns an empty aggregate document for a fresh user.
func NewAppState() AppState {
	return AppState{Goals: map[string]Goal{}}
}

// Finance returns the finance data, materializing an empty value when
// nil so list accessors never have to nil-check.
func (g Goal) Finance() FinanceData {
	if g.FinanceData == nil {
		return FinanceData{}
	}
	return *g.FinanceData
}

// MarshalDocument encodes the aggregate document the way the store
// persists it.
func MarshalDocument(state AppState) ([]byte, error) {
	return json.Marshal(state)
}
