package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/spline3d"
	"github.com/npillmayer/spline3d/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "chains.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func curvy(t *testing.T) *chain.Chain {
	t.Helper()
	c := chain.New()
	c.AddSegment()
	c.AddSegment()
	require.NoError(t, c.SetControlPoint(2, spline3d.P3(3, 1.25, -0.5)))
	require.NoError(t, c.SetControlPoint(5, spline3d.P3(6, -2, 1.0/3.0)))
	require.NoError(t, c.SetControlPointMode(4, chain.Aligned))
	require.NoError(t, c.SetControlPointMode(9, chain.Mirrored))
	return c
}

func sample(c *chain.Chain) []spline3d.V3 {
	var pts []spline3d.V3
	for i := 0; i <= 48; i++ {
		pts = append(pts, c.Evaluate(float64(i)/48))
	}
	return pts
}

func TestSaveLoad(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ctx := context.Background()
	s := openStore(t)
	c := curvy(t)
	require.NoError(t, s.Save(ctx, "mainline", c))
	d, err := s.Load(ctx, "mainline")
	require.NoError(t, err)
	assert.Equal(t, c.State(), d.State())
	if diff := cmp.Diff(sample(c), sample(d), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("loaded chain evaluates differently (-want +got):\n%s", diff)
	}
}

func TestSaveReplaces(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ctx := context.Background()
	s := openStore(t)
	require.NoError(t, s.Save(ctx, "siding", curvy(t)))
	require.NoError(t, s.Save(ctx, "siding", chain.New()))
	d, err := s.Load(ctx, "siding")
	require.NoError(t, err)
	assert.Equal(t, 1, d.SegmentCount())
	assert.Equal(t, chain.New().State(), d.State())
}

func TestListDelete(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ctx := context.Background()
	s := openStore(t)
	for _, name := range []string{"yard", "branch", "mainline"} {
		require.NoError(t, s.Save(ctx, name, chain.New()))
	}
	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"branch", "mainline", "yard"}, names)
	require.NoError(t, s.Delete(ctx, "mainline"))
	assert.True(t, errors.Is(s.Delete(ctx, "mainline"), ErrNotFound))
	_, err = s.Load(ctx, "mainline")
	assert.True(t, errors.Is(err, ErrNotFound))
	names, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"branch", "yard"}, names)
}

func TestLoadRejectsDamagedChain(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ctx := context.Background()
	s := openStore(t)
	require.NoError(t, s.Save(ctx, "short", curvy(t)))
	_, err := s.db.Exec(`DELETE FROM points WHERE chain = ? AND idx = 9`, "short")
	require.NoError(t, err)
	_, err = s.Load(ctx, "short")
	assert.True(t, errors.Is(err, chain.ErrInvariantViolation), "got %v", err)

	require.NoError(t, s.Save(ctx, "gap", curvy(t)))
	_, err = s.db.Exec(`DELETE FROM points WHERE chain = ? AND idx = 4`, "gap")
	require.NoError(t, err)
	_, err = s.Load(ctx, "gap")
	assert.True(t, errors.Is(err, chain.ErrInvariantViolation), "got %v", err)

	// points and modes of a whole segment gone: still a valid chain, but not the one recorded
	require.NoError(t, s.Save(ctx, "truncated", curvy(t)))
	_, err = s.db.Exec(`DELETE FROM points WHERE chain = ? AND idx > 6`, "truncated")
	require.NoError(t, err)
	_, err = s.db.Exec(`DELETE FROM modes WHERE chain = ? AND idx > 2`, "truncated")
	require.NoError(t, err)
	_, err = s.Load(ctx, "truncated")
	assert.True(t, errors.Is(err, chain.ErrInvariantViolation), "got %v", err)

	require.NoError(t, s.Save(ctx, "oddmode", curvy(t)))
	_, err = s.db.Exec(`UPDATE modes SET mode = 'wobbly' WHERE chain = ?`, "oddmode")
	require.NoError(t, err)
	_, err = s.Load(ctx, "oddmode")
	assert.True(t, errors.Is(err, chain.ErrInvariantViolation), "got %v", err)
}
