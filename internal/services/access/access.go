// Package access решает, кто может смотреть и менять галерею.
package access

import (
	"context"
	"fmt"

	"user_galleries/internal/domain/models"
	"user_galleries/internal/metrics"

	"github.com/google/uuid"
)

type Operation string

const (
	OpView   Operation = "view"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// BlockOracle отвечает, заблокировал ли blocker пользователя blocked. Направление важно.
type BlockOracle interface {
	IsBlocked(ctx context.Context, blocker, blocked uuid.UUID) (bool, error)
}

type Policy struct {
	blocks BlockOracle
}

func New(blocks BlockOracle) *Policy {
	return &Policy{blocks: blocks}
}

// CanAccess не кэширует блокировки: каждый вызов заново спрашивает оракул.
func (p *Policy) CanAccess(ctx context.Context, g models.Gallery, operation Operation, actor models.Actor) (bool, error) {
	const op = "access.Policy.CanAccess"

	allowed, err := p.decide(ctx, g, operation, actor)

	result := "deny"
	switch {
	case err != nil:
		result = "error"
	case allowed:
		result = "allow"
	}
	metrics.AccessDecisions.WithLabelValues(string(operation), result).Inc()

	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return allowed, nil
}

func (p *Policy) decide(ctx context.Context, g models.Gallery, operation Operation, actor models.Actor) (bool, error) {
	if !g.Type.Valid() {
		return false, nil
	}

	switch operation {
	case OpUpdate, OpDelete:
		return actor.Is(g.OwnerID) || actor.HasPermission(models.PermManageGalleries), nil

	case OpView:
		if g.Type == models.GalleryTypePublic {
			return true, nil
		}

		if actor.Is(g.OwnerID) ||
			actor.HasPermission(models.PermViewAnyPrivate) ||
			actor.HasPermission(models.PermManageGalleries) {
			return true, nil
		}

		if !g.IsAllowed(actor.ID) {
			return false, nil
		}

		blocked, err := p.IsMutuallyBlocked(ctx, actor.ID, g.OwnerID)
		if err != nil {
			return false, err
		}
		return !blocked, nil

	default:
		return false, nil
	}
}

// CanCreate: галереи создаются только через GetOrCreate, напрямую - никогда
func (p *Policy) CanCreate(models.Actor) bool {
	return false
}

// IsMutuallyBlocked проверяет блокировку в обе стороны
func (p *Policy) IsMutuallyBlocked(ctx context.Context, a, b uuid.UUID) (bool, error) {
	if a == uuid.Nil || b == uuid.Nil || a == b {
		return false, nil
	}

	blocked, err := p.blocks.IsBlocked(ctx, a, b)
	if err != nil {
		return false, fmt.Errorf("check block %s -> %s: %w", a, b, err)
	}
	if blocked {
		return true, nil
	}

	blocked, err = p.blocks.IsBlocked(ctx, b, a)
	if err != nil {
		return false, fmt.Errorf("check block %s -> %s: %w", b, a, err)
	}

	return blocked, nil
}
