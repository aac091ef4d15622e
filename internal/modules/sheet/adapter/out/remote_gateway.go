package out

import (
	"context"
	"net/http"
	"net/url"

	"timebox/internal/modules/sheet/domain"
	"timebox/internal/modules/sheet/dto"
	sheetout "timebox/internal/modules/sheet/port/out"
	"timebox/internal/platform/httpclient"
)

const sheetsPath = "/api/sheets"

// RemoteGateway persists sheets through the timebox HTTP API of the signed-in
// principal.
type RemoteGateway struct {
	client *httpclient.Client
}

func NewRemoteGateway(client *httpclient.Client) sheetout.Gateway {
	return &RemoteGateway{client: client}
}

func (g *RemoteGateway) List(ctx context.Context) ([]domain.Sheet, error) {
	var sheets []dto.Sheet
	if err := g.client.Do(ctx, http.MethodGet, sheetsPath, nil, &sheets); err != nil {
		return nil, err
	}
	return dto.ToDomainList(sheets), nil
}

func (g *RemoteGateway) Create(ctx context.Context, s domain.Sheet) (domain.Sheet, error) {
	wire := dto.FromDomain(s)
	input := dto.CreateSheetInput{
		Date:       wire.Date,
		Priorities: wire.Priorities,
		Hours:      wire.Hours,
		Window:     wire.Window,
		BrainDump:  wire.BrainDump,
	}
	var created dto.Sheet
	if err := g.client.Do(ctx, http.MethodPost, sheetsPath, input, &created); err != nil {
		return domain.Sheet{}, err
	}
	return created.ToDomain(), nil
}

func (g *RemoteGateway) Update(ctx context.Context, s domain.Sheet) (domain.Sheet, error) {
	wire := dto.FromDomain(s)
	input := dto.UpdateSheetInput{
		Priorities: wire.Priorities,
		Hours:      wire.Hours,
		Window:     wire.Window,
		BrainDump:  wire.BrainDump,
	}
	var updated dto.Sheet
	if err := g.client.Do(ctx, http.MethodPut, sheetsPath+"/"+url.PathEscape(s.ID), input, &updated); err != nil {
		return domain.Sheet{}, err
	}
	return updated.ToDomain(), nil
}

func (g *RemoteGateway) Remove(ctx context.Context, id string) error {
	return g.client.Do(ctx, http.MethodDelete, sheetsPath+"/"+url.PathEscape(id), nil, nil)
}
