package lists

import (
	"context"

	"github.com/aadilmughal786/one-goal-sub006/internal/app/goalstate"
	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/logging"
)

// ─── Finance List Mutators ──────────────────────────────────────────────────
// Subscriptions, assets and liabilities live one level deeper, under
// goals.<id>.financeData.<list>. The dot-path write materializes
// financeData on first use, so a nil financeData never needs special
// handling here.

// SubscriptionService mutates goals.<id>.financeData.subscriptions.
type SubscriptionService struct {
	core core[domain.Subscription]
}

// NewSubscriptionService creates the subscription list mutator.
func NewSubscriptionService(states *goalstate.Service, store domain.DocumentStore, log *logging.Logger) *SubscriptionService {
	return &SubscriptionService{core: core[domain.Subscription]{
		states: states,
		store:  store,
		log:    log,
		field:  domain.FieldSubscriptions,
		name:   "subscriptions",
		label:  "subscriptions",
		policy: appendToEnd,
		items:  func(g domain.Goal) []domain.Subscription { return g.Finance().Subscriptions },
		touch:  func(s *domain.Subscription, now domain.Timestamp) { s.UpdatedAt = now },
	}}
}

// SubscriptionInput carries caller-supplied fields for a new entry.
type SubscriptionInput struct {
	Name            string              `json:"name"`
	Amount          float64             `json:"amount"`
	BillingCycle    domain.BillingCycle `json:"billingCycle"`
	NextBillingDate *domain.Timestamp   `json:"nextBillingDate"`
	Notes           string              `json:"notes"`
}

// Add appends a new subscription. Default billing cycle is monthly.
func (s *SubscriptionService) Add(ctx context.Context, userID, goalID string, in SubscriptionInput) (domain.Subscription, error) {
	return s.core.add(ctx, userID, goalID, func(id string, now domain.Timestamp) domain.Subscription {
		cycle := in.BillingCycle
		if cycle == "" {
			cycle = domain.CycleMonthly
		}
		return domain.Subscription{
			ID:              id,
			Name:            in.Name,
			Amount:          in.Amount,
			BillingCycle:    cycle,
			NextBillingDate: in.NextBillingDate,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
	})
}

// SubscriptionPatch carries the optional fields of a partial update.
type SubscriptionPatch struct {
	Name            *string              `json:"name"`
	Amount          *float64             `json:"amount"`
	BillingCycle    *domain.BillingCycle `json:"billingCycle"`
	NextBillingDate *domain.Timestamp    `json:"nextBillingDate"`
	Notes           *string              `json:"notes"`
}

// Update merges the patch into the subscription with itemID.
func (s *SubscriptionService) Update(ctx context.Context, userID, goalID, itemID string, p SubscriptionPatch) error {
	return s.core.update(ctx, userID, goalID, itemID, func(sub *domain.Subscription, _ domain.Timestamp) {
		if p.Name != nil {
			sub.Name = *p.Name
		}
		if p.Amount != nil {
			sub.Amount = *p.Amount
		}
		if p.BillingCycle != nil {
			sub.BillingCycle = *p.BillingCycle
		}
		if p.NextBillingDate != nil {
			sub.NextBillingDate = p.NextBillingDate
		}
		if p.Notes != nil {
			sub.Notes = *p.Notes
		}
	})
}

// Delete removes the subscription with itemID; absent ids are a no-op.
func (s *SubscriptionService) Delete(ctx context.Context, userID, goalID, itemID string) error {
	return s.core.delete(ctx, userID, goalID, itemID)
}

// ─── Assets ─────────────────────────────────────────────────────────────────

// AssetService mutates goals.<id>.financeData.assets.
type AssetService struct {
	core core[domain.Asset]
}

// NewAssetService creates the asset list mutator.
func NewAssetService(states *goalstate.Service, store domain.DocumentStore, log *logging.Logger) *AssetService {
	return &AssetService{core: core[domain.Asset]{
		states: states,
		store:  store,
		log:    log,
		field:  domain.FieldAssets,
		name:   "assets",
		label:  "assets",
		policy: appendToEnd,
		items:  func(g domain.Goal) []domain.Asset { return g.Finance().Assets },
		touch:  func(a *domain.Asset, now domain.Timestamp) { a.UpdatedAt = now },
	}}
}

// AssetInput carries caller-supplied fields for a new entry.
type AssetInput struct {
	Name   string           `json:"name"`
	Amount float64          `json:"amount"`
	Type   domain.AssetType `json:"type"`
	Notes  string           `json:"notes"`
}

// Add appends a new asset. Default type is "other".
func (s *AssetService) Add(ctx context.Context, userID, goalID string, in AssetInput) (domain.Asset, error) {
	return s.core.add(ctx, userID, goalID, func(id string, now domain.Timestamp) domain.Asset {
		typ := in.Type
		if typ == "" {
			typ = domain.AssetOther
		}
		return domain.Asset{
			ID:        id,
			Name:      in.Name,
			Amount:    in.Amount,
			Type:      typ,
			Notes:     in.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
	})
}

// AssetPatch carries the optional fields of a partial update.
type AssetPatch struct {
	Name   *string           `json:"name"`
	Amount *float64          `json:"amount"`
	Type   *domain.AssetType `json:"type"`
	Notes  *string           `json:"notes"`
}

// Update merges the patch into the asset with itemID.
func (s *AssetService) Update(ctx context.Context, userID, goalID, itemID string, p AssetPatch) error {
	return s.core.update(ctx, userID, goalID, itemID, func(a *domain.Asset, _ domain.Timestamp) {
		if p.Name != nil {
			a.Name = *p.Name
		}
		if p.Amount != nil {
			a.Amount = *p.Amount
		}
		if p.Type != nil {
			a.Type = *p.Type
		}
		if p.Notes != nil {
			a.Notes = *p.Notes
		}
	})
}

// Delete removes the asset with itemID; absent ids are a no-op.
func (s *AssetService) Delete(ctx context.Context, userID, goalID, itemID string) error {
	return s.core.delete(ctx, userID, goalID, itemID)
}

// ─── Liabilities ────────────────────────────────────────────────────────────

// LiabilityService mutates goals.<id>.financeData.liabilities.
type LiabilityService struct {
	core core[domain.Liability]
}

// NewLiabilityService creates the liability list mutator.
func NewLiabilityService(states *goalstate.Service, store domain.DocumentStore, log *logging.Logger) *LiabilityService {
	return &LiabilityService{core: core[domain.Liability]{
		states: states,
		store:  store,
		log:    log,
		field:  domain.FieldLiabilities,
		name:   "liabilities",
		label:  "liabilities",
		policy: appendToEnd,
		items:  func(g domain.Goal) []domain.Liability { return g.Finance().Liabilities },
		touch:  func(l *domain.Liability, now domain.Timestamp) { l.UpdatedAt = now },
	}}
}

// LiabilityInput carries caller-supplied fields for a new entry.
type LiabilityInput struct {
	Name   string               `json:"name"`
	Amount float64              `json:"amount"`
	Type   domain.LiabilityType `json:"type"`
	Notes  string               `json:"notes"`
}

// Add appends a new liability. Default type is "other".
func (s *LiabilityService) Add(ctx context.Context, userID, goalID string, in LiabilityInput) (domain.Liability, error) {
	return s.core.add(ctx, userID, goalID, func(id string, now domain.Timestamp) domain.Liability {
		typ := in.Type
		if typ == "" {
			typ = domain.LiabilityOther
		}
		return domain.Liability{
			ID:        id,
			Name:      in.Name,
			Amount:    in.Amount,
			Type:      typ,
			Notes:     in.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
	})
}

// LiabilityPatch carries the optional fields of a partial update.
type LiabilityPatch struct {
	Name   *string               `json:"name"`
	Amount *float64              `json:"amount"`
	Type   *domain.LiabilityType `json:"type"`
	Notes  *string               `json:"notes"`
}

// Update merges the patch into the liability with itemID.
func (s *LiabilityService) Update(ctx context.Context, userID, goalID, itemID string, p LiabilityPatch) error {
	return s.core.update(ctx, userID, goalID, itemID, func(l *domain.Liability, _ domain.Timestamp) {
		if p.Name != nil {
			l.Name = *p.Name
		}
		if p.Amount != nil {
			l.Amount = *p.Amount
		}
		if p.Type != nil {
			l.Type = *p.Type
		}
		if p.Notes != nil {
			l.Notes = *p.Notes
		}
	})
}

// Delete removes the liability with itemID; absent ids are a no-op.
func (s *LiabilityService) Delete(ctx context.Context, userID, goalID, itemID string) error {
	return s.core.delete(ctx, userID, goalID, itemID)
}
