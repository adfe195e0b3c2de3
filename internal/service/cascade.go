package service

import (
	"context"

	"github.com/Bozotek/pickaguide-api/internal/model"
	"github.com/Bozotek/pickaguide-api/internal/repository"
)

// Cascade runs the ordered side effects of account removal. Steps run
// strictly in sequence; the first failure aborts the rest and there is no
// rollback of completed steps. A crash mid-cascade can leave orphaned
// visits or adverts behind, which is accepted rather than engineered away.
type Cascade struct {
	userRepo      repository.UserRepository
	advertRepo    repository.AdvertRepository
	visitRepo     repository.VisitRepository
	blacklistRepo repository.BlacklistRepository
}

func NewCascade(
	userRepo repository.UserRepository,
	advertRepo repository.AdvertRepository,
	visitRepo repository.VisitRepository,
	blacklistRepo repository.BlacklistRepository,
) *Cascade {
	return &Cascade{
		userRepo:      userRepo,
		advertRepo:    advertRepo,
		visitRepo:     visitRepo,
		blacklistRepo: blacklistRepo,
	}
}

// OnAccountRemoval cancels the user's visits, retires them if they are a
// guide, removes their adverts, blacklists the email and finally deletes
// the user record.
func (c *Cascade) OnAccountRemoval(ctx context.Context, user *model.User) error {
	if err := c.visitRepo.CancelAllForVisitor(ctx, user.ID); err != nil {
		return err
	}

	if user.IsGuide {
		if err := c.visitRepo.DenyPendingForGuide(ctx, user.ID); err != nil {
			return err
		}
		if err := c.advertRepo.DeactivateAllForOwner(ctx, user.ID); err != nil {
			return err
		}
		if err := c.advertRepo.DeleteAllForOwner(ctx, user.ID); err != nil {
			return err
		}
	}

	if err := c.blacklistRepo.Add(ctx, user.Account.Email); err != nil {
		return err
	}

	return c.userRepo.Delete(ctx, user.ID)
}
