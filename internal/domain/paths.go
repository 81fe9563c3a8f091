package domain

// ─── Typed Field Paths ──────────────────────────────────────────────────────
// Dot-path strings are how the document store addresses a nested field,
// but they are only ever constructed here. Everything above this file
// speaks ListField, so an invalid path is a compile error, not a typo
// discovered at runtime.

// ListField names one mutable sub-list (or set field) inside a goal.
type ListField string

const (
	FieldToDoList      ListField = "toDoList"
	FieldNotToDoList   ListField = "notToDoList"
	FieldStickyNotes   ListField = "stickyNotes"
	FieldStarredQuotes ListField = "starredQuotes"
	FieldSubscriptions ListField = "subscriptions"
	FieldAssets        ListField = "assets"
	FieldLiabilities   ListField = "liabilities"
)

// financeNested reports whether the field lives under financeData.
func (f ListField) financeNested() bool {
	switch f {
	case FieldSubscriptions, FieldAssets, FieldLiabilities:
		return true
	}
	return false
}

// GoalField builds the dot-path for one list field of one goal:
// goals.<goalID>.<field>, or goals.<goalID>.financeData.<field> for
// the finance sub-lists.
func GoalField(goalID string, field ListField) string {
	if field.financeNested() {
		return "goals." + goalID + ".financeData." + string(field)
	}
	return "goals." + goalID + "." + string(field)
}

// GoalPath addresses a whole goal inside the aggregate document.
func GoalPath(goalID string) string {
	return "goals." + goalID
}

// Top-level document fields addressed by the supplementary mutators.
const (
	PathGoals              = "goals"
	PathActiveGoal         = "activeGoalId"
	PathProfileDisplayName = "profile.displayName"
	PathProfilePhotoURL    = "profile.photoURL"
	PathProfileUpdatedAt   = "profile.updatedAt"
)
