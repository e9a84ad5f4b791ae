package cooldown

import (
	"fmt"
	"time"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

// ErrOnCooldown is returned when a crate is still on cooldown for an actor
type ErrOnCooldown struct {
	CrateID   string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	return fmt.Sprintf(ErrFmtCooldown, e.CrateID, FormatRemaining(e.Remaining.Milliseconds()))
}

// Is matches any ErrOnCooldown as well as domain.ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	if target == domain.ErrOnCooldown {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}
