package out

import (
	"context"
	"net/http"

	"timebox/internal/modules/preferences/domain"
	"timebox/internal/modules/preferences/dto"
	prefsout "timebox/internal/modules/preferences/port/out"
	"timebox/internal/platform/httpclient"
)

const preferencesPath = "/api/preferences"

type RemoteGateway struct {
	client *httpclient.Client
}

func NewRemoteGateway(client *httpclient.Client) prefsout.Gateway {
	return &RemoteGateway{client: client}
}

func (g *RemoteGateway) Fetch(ctx context.Context) (domain.Preferences, error) {
	var prefs dto.Preferences
	if err := g.client.Do(ctx, http.MethodGet, preferencesPath, nil, &prefs); err != nil {
		return domain.Preferences{}, err
	}
	return prefs.ToDomain(), nil
}

func (g *RemoteGateway) Save(ctx context.Context, p domain.Preferences) (domain.Preferences, error) {
	var saved dto.Preferences
	if err := g.client.Do(ctx, http.MethodPut, preferencesPath, dto.FromDomain(p), &saved); err != nil {
		return domain.Preferences{}, err
	}
	return saved.ToDomain(), nil
}

func (g *RemoteGateway) Persistent() bool {
	return true
}
