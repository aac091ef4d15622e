package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"timebox/internal/modules/sheet/domain"
	"timebox/internal/modules/sheet/dto"
	sheetout "timebox/internal/modules/sheet/port/out"
	apperrors "timebox/internal/platform/errors"
	"timebox/internal/platform/id"
)

// GuestKey holds the whole guest collection as one JSON array.
const GuestKey = "timeBoxSheets_guest"

// LocalGateway keeps a guest's sheets on the local disk. Every call reads the
// collection fresh and every mutation rewrites it whole.
type LocalGateway struct {
	d   *diskv.Diskv
	ids id.Generator
}

func NewLocalGateway(dir string, ids id.Generator) sheetout.Gateway {
	return &LocalGateway{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			TempDir:      filepath.Join(dir, ".tmp"),
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 0,
		}),
		ids: ids,
	}
}

func (g *LocalGateway) List(_ context.Context) ([]domain.Sheet, error) {
	return g.read()
}

func (g *LocalGateway) Create(_ context.Context, s domain.Sheet) (domain.Sheet, error) {
	sheets, err := g.read()
	if err != nil {
		return domain.Sheet{}, err
	}
	for _, existing := range sheets {
		if existing.Date == s.Date {
			return domain.Sheet{}, fmt.Errorf("%w: sheet for %s already exists", apperrors.ErrConflict, s.Date)
		}
	}
	out := s.Clone()
	if out.ID == "" {
		out.ID = g.ids.New()
	}
	out.FormattedDate = ""
	if err := g.write(append(sheets, out)); err != nil {
		return domain.Sheet{}, err
	}
	return out, nil
}

func (g *LocalGateway) Update(_ context.Context, s domain.Sheet) (domain.Sheet, error) {
	sheets, err := g.read()
	if err != nil {
		return domain.Sheet{}, err
	}
	for i := range sheets {
		if sheets[i].ID != s.ID {
			continue
		}
		out := s.Clone()
		out.FormattedDate = ""
		sheets[i] = out
		if err := g.write(sheets); err != nil {
			return domain.Sheet{}, err
		}
		return out, nil
	}
	return domain.Sheet{}, fmt.Errorf("%w: sheet %q", apperrors.ErrNotFound, s.ID)
}

func (g *LocalGateway) Remove(_ context.Context, sheetID string) error {
	sheets, err := g.read()
	if err != nil {
		return err
	}
	for i := range sheets {
		if sheets[i].ID != sheetID {
			continue
		}
		return g.write(append(sheets[:i], sheets[i+1:]...))
	}
	return fmt.Errorf("%w: sheet %q", apperrors.ErrNotFound, sheetID)
}

// read treats a missing or malformed value as an empty collection. Any other
// read failure is returned so a mutation never overwrites data it could not
// see.
func (g *LocalGateway) read() ([]domain.Sheet, error) {
	raw, err := g.d.Read(GuestKey)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Sheet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read guest sheets: %v", apperrors.ErrAdapterFailure, err)
	}
	var wire []dto.Sheet
	if err := json.Unmarshal(raw, &wire); err != nil {
		return []domain.Sheet{}, nil
	}
	return dto.ToDomainList(wire), nil
}

func (g *LocalGateway) write(sheets []domain.Sheet) error {
	raw, err := json.Marshal(dto.FromDomainList(sheets))
	if err != nil {
		return fmt.Errorf("%w: encode guest sheets: %v", apperrors.ErrAdapterFailure, err)
	}
	if err := g.d.Write(GuestKey, raw); err != nil {
		return fmt.Errorf("%w: write guest sheets: %v", apperrors.ErrAdapterFailure, err)
	}
	return nil
}
