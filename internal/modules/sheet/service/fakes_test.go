package service_test

import (
	"context"
	"fmt"
	"strconv"

	"timebox/internal/modules/sheet/domain"
	apperrors "timebox/internal/platform/errors"
)

type fakeGateway struct {
	sheets  []domain.Sheet
	nextID  int
	calls   map[string]int
	failOn  string
	failErr error
}

func newFakeGateway(seed ...domain.Sheet) *fakeGateway {
	return &fakeGateway{sheets: seed, calls: map[string]int{}}
}

func (g *fakeGateway) fail(op string) error {
	g.calls[op]++
	if g.failOn == op {
		if g.failErr != nil {
			return g.failErr
		}
		return fmt.Errorf("%w: boom", apperrors.ErrAdapterFailure)
	}
	return nil
}

func (g *fakeGateway) List(context.Context) ([]domain.Sheet, error) {
	if err := g.fail("list"); err != nil {
		return nil, err
	}
	out := make([]domain.Sheet, 0, len(g.sheets))
	for _, s := range g.sheets {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (g *fakeGateway) Create(_ context.Context, s domain.Sheet) (domain.Sheet, error) {
	if err := g.fail("create"); err != nil {
		return domain.Sheet{}, err
	}
	g.nextID++
	s.ID = "gw-" + strconv.Itoa(g.nextID)
	g.sheets = append(g.sheets, s.Clone())
	return s, nil
}

func (g *fakeGateway) Update(_ context.Context, s domain.Sheet) (domain.Sheet, error) {
	if err := g.fail("update"); err != nil {
		return domain.Sheet{}, err
	}
	for i := range g.sheets {
		if g.sheets[i].ID == s.ID {
			g.sheets[i] = s.Clone()
			return s, nil
		}
	}
	return domain.Sheet{}, apperrors.ErrNotFound
}

func (g *fakeGateway) Remove(_ context.Context, id string) error {
	if err := g.fail("remove"); err != nil {
		return err
	}
	for i := range g.sheets {
		if g.sheets[i].ID == id {
			g.sheets = append(g.sheets[:i], g.sheets[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fixedWindow struct {
	window domain.Window
}

func (f *fixedWindow) Window(context.Context) (domain.Window, error) {
	return f.window, nil
}

type fakeExporter struct {
	exported []domain.Sheet
}

func (f *fakeExporter) Export(_ context.Context, s domain.Sheet, dir string) (string, error) {
	f.exported = append(f.exported, s)
	return dir + "/" + s.Date + ".md", nil
}
