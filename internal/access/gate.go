package access

import "usdtcalc/internal/domain"

// Gate answers whether a chat user may change configuration or read stats.
// The admin set is fixed at construction.
type Gate struct {
	admins map[int64]struct{}
}

func (g *Gate) IsAdmin(userID int64) bool {
	_, ok := g.admins[userID]
	return ok
}

// Authorize returns domain.ErrAccessDenied for non-admins.
func (g *Gate) Authorize(userID int64) error {
	if !g.IsAdmin(userID) {
		return domain.ErrAccessDenied
	}
	return nil
}

func NewGate(ids []int64) *Gate {
	admins := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		admins[id] = struct{}{}
	}
	return &Gate{admins: admins}
}
