package export

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/san-kum/particlefield/internal/engine"
	"github.com/san-kum/particlefield/internal/field"
)

// Shot is one image of a gallery.
type Shot struct {
	Name   string
	Params field.Params
	Seed   int64
}

type ShotResult struct {
	Shot
	Path string
	Result
}

// Gallery renders every shot into dir concurrently, one engine per shot.
// opts are shared by all engines, so observers do not belong there. The
// first error wins; results keep the order of shots.
func Gallery(ctx context.Context, dir, kind string, shots []Shot, o Options, opts ...engine.Option) ([]ShotResult, error) {
	results := make([]ShotResult, len(shots))
	errs := make([]error, len(shots))

	var wg sync.WaitGroup
	for i, shot := range shots {
		wg.Add(1)
		go func(idx int, shot Shot) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			t, err := New(kind, o.Width, o.Height)
			if err != nil {
				errs[idx] = err
				return
			}
			shotOpts := append(append([]engine.Option(nil), opts...), engine.WithSeed(shot.Seed))
			res := Render(t, shot.Params, o, shotOpts...)

			path := filepath.Join(dir, shot.Name+"."+kind)
			if err := t.Save(path); err != nil {
				errs[idx] = fmt.Errorf("shot %s: %w", shot.Name, err)
				return
			}
			results[idx] = ShotResult{Shot: shot, Path: path, Result: res}
		}(i, shot)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
