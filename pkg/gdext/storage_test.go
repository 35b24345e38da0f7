package gdext_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ughuuu/gdext/pkg/gdext"
	"github.com/Ughuuu/gdext/pkg/gdext/cell"
)

type player struct {
	name  string
	score int
}

func (p *player) AddScore(n int) { p.score += n }
func (p *player) Score() int     { return p.score }

type scorer interface {
	AddScore(n int)
	Score() int
}

func newPlayerStorage() *gdext.Storage[player] {
	base := gdext.NewBase(unsafe.Pointer(new(int)), 42)
	return gdext.NewStorage(base, player{name: "p1"})
}

func TestStorageBindFlow(t *testing.T) {
	s := newPlayerStorage()

	mg, err := s.BindMut()
	require.NoError(t, err)
	mg.Value().AddScore(10)

	// Payload stays locked while the exclusive guard lives.
	_, err = s.Bind()
	assert.ErrorIs(t, err, cell.ErrBorrowConflict)
	mg.Release()

	rg, err := s.Bind()
	require.NoError(t, err)
	defer rg.Release()
	assert.Equal(t, 10, rg.Value().Score())
}

func TestStorageBindDyn(t *testing.T) {
	s := newPlayerStorage()

	dg, err := gdext.BindDyn(s, func(p *player) scorer { return p })
	require.NoError(t, err)
	dg.Facet().AddScore(3)
	dg.Release()

	mg, err := s.BindMut()
	require.NoError(t, err)
	defer mg.Release()
	assert.Equal(t, 3, mg.Value().Score())
}

func TestBaseRefExposesHandle(t *testing.T) {
	s := newPlayerStorage()

	rg, err := s.Bind()
	require.NoError(t, err)
	defer rg.Release()

	ref := s.BaseRef(rg)
	assert.Equal(t, gdext.ObjectID(42), ref.Handle().ID())
	assert.Equal(t, s.Base().Ptr(), ref.Handle().Ptr())
}

func TestBaseRefAcceptsExclusiveGuard(t *testing.T) {
	s := newPlayerStorage()

	mg, err := s.BindMut()
	require.NoError(t, err)
	defer mg.Release()

	ref := s.BaseRef(mg)
	assert.Equal(t, gdext.ObjectID(42), ref.Handle().ID())
}

func TestBaseRefRequiresLiveGuard(t *testing.T) {
	s := newPlayerStorage()

	rg, err := s.Bind()
	require.NoError(t, err)
	rg.Release()

	// A released guard no longer witnesses a borrow, so the handle view
	// must not be constructible from it.
	assert.Panics(t, func() { s.BaseRef(rg) })
}

func TestBaseMutLocksPayload(t *testing.T) {
	s := newPlayerStorage()

	bm, err := s.BaseMut()
	require.NoError(t, err)
	assert.Equal(t, gdext.ObjectID(42), bm.Handle().ID())

	// While the base is mutably exposed the payload must be unreachable
	// through every path.
	_, err = s.Bind()
	assert.ErrorIs(t, err, cell.ErrBorrowConflict)
	_, err = s.BindMut()
	assert.ErrorIs(t, err, cell.ErrBorrowConflict)

	bm.Release()

	mg, err := s.BindMut()
	require.NoError(t, err)
	mg.Release()
}

func TestBaseMutWhilePayloadBorrowedFails(t *testing.T) {
	s := newPlayerStorage()

	rg, err := s.Bind()
	require.NoError(t, err)

	_, err = s.BaseMut()
	assert.ErrorIs(t, err, cell.ErrBorrowConflict)

	rg.Release()
}

func TestStorageDestroy(t *testing.T) {
	s := newPlayerStorage()

	rg, err := s.Bind()
	require.NoError(t, err)

	// A borrowed payload cannot be destroyed.
	err = s.Destroy()
	assert.ErrorIs(t, err, cell.ErrBorrowConflict)
	rg.Release()

	require.NoError(t, s.Destroy())
	require.NoError(t, s.Destroy()) // idempotent

	_, err = s.Bind()
	assert.ErrorIs(t, err, gdext.ErrStorageDestroyed)
	_, err = s.BindMut()
	assert.ErrorIs(t, err, gdext.ErrStorageDestroyed)
	_, err = s.BaseMut()
	assert.ErrorIs(t, err, gdext.ErrStorageDestroyed)
	_, err = gdext.BindDyn(s, func(p *player) scorer { return p })
	assert.ErrorIs(t, err, gdext.ErrStorageDestroyed)
}
