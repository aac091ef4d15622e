package out

import (
	"context"
	"fmt"

	"timebox/internal/modules/preferences/domain"
	prefsout "timebox/internal/modules/preferences/port/out"
	apperrors "timebox/internal/platform/errors"
)

// StaticGateway serves guest sessions: fixed values, nothing is saved.
type StaticGateway struct {
	prefs domain.Preferences
}

func NewStaticGateway(prefs domain.Preferences) prefsout.Gateway {
	return StaticGateway{prefs: prefs}
}

func (g StaticGateway) Fetch(context.Context) (domain.Preferences, error) {
	return g.prefs, nil
}

func (g StaticGateway) Save(context.Context, domain.Preferences) (domain.Preferences, error) {
	return domain.Preferences{}, fmt.Errorf("%w: guest preferences are not saved", apperrors.ErrUnsupported)
}

func (g StaticGateway) Persistent() bool {
	return false
}
