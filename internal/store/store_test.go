package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniada/miniada/symtab"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleFrames() []symtab.Frame {
	out := symtab.ModeOut
	return []symtab.Frame{
		{
			Procedure: "Inner",
			Depth:     2,
			Line:      3,
			Params: []symtab.Slot{
				{Name: "y", Kind: symtab.KindVariable, Type: symtab.TypeInteger, Mode: &out, Offset: 4, Size: 2},
			},
			ParamSize: 2,
		},
		{
			Procedure: "Main",
			Depth:     1,
			Line:      1,
			Locals: []symtab.Slot{
				{Name: "pi", Kind: symtab.KindConstant, Type: symtab.TypeFloat, Offset: 2, Size: 4, Value: "3.14"},
			},
			Nested:    []string{"Inner"},
			LocalSize: 4,
		},
	}
}

func TestSaveRunAssignsIDAndTime(t *testing.T) {
	s := openStore(t)
	run := &Run{Program: "main", File: "main.ada", Successful: true, Tokens: 12}
	require.NoError(t, s.SaveRun(context.Background(), run))

	_, err := uuid.Parse(run.ID)
	assert.NoError(t, err)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestFramesRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	run := &Run{Program: "main", File: "main.ada", Successful: true, Frames: sampleFrames()}
	require.NoError(t, s.SaveRun(ctx, run))

	frames, err := s.Frames(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, sampleFrames(), frames)
}

func TestFramesUnknownRun(t *testing.T) {
	s := openStore(t)
	_, err := s.Frames(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestRunsNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, s.SaveRun(ctx, &Run{Program: "old", File: "old.ada", CreatedAt: base, Successful: true}))
	require.NoError(t, s.SaveRun(ctx, &Run{
		Program:    "new",
		File:       "new.ada",
		CreatedAt:  base.Add(time.Hour),
		ErrorCode:  "duplicate-symbol",
		Error:      "Error: Duplicate symbol: 'a' at line number 3",
		Successful: false,
	}))

	runs, err := s.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].Program)
	assert.False(t, runs[0].Successful)
	assert.Equal(t, "duplicate-symbol", runs[0].ErrorCode)
	assert.True(t, runs[0].CreatedAt.Equal(base.Add(time.Hour)))
	assert.Equal(t, "old", runs[1].Program)
	assert.True(t, runs[1].Successful)
	assert.Empty(t, runs[1].ErrorCode)
	assert.Nil(t, runs[1].Frames)

	limited, err := s.Runs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestPrune(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	old := &Run{Program: "old", File: "old.ada", CreatedAt: base, Frames: sampleFrames()}
	require.NoError(t, s.SaveRun(ctx, old))
	require.NoError(t, s.SaveRun(ctx, &Run{Program: "new", File: "new.ada", CreatedAt: base.Add(48 * time.Hour)}))

	n, err := s.Prune(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	runs, err := s.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "new", runs[0].Program)

	_, err = s.Frames(ctx, old.ID)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestDuplicateIDRejected(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	id := uuid.New().String()
	require.NoError(t, s.SaveRun(ctx, &Run{ID: id, Program: "a", File: "a.ada"}))
	assert.Error(t, s.SaveRun(ctx, &Run{ID: id, Program: "b", File: "b.ada"}))
}
