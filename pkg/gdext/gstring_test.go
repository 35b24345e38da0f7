package gdext_test

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ughuuu/gdext/pkg/gdext"
	"github.com/Ughuuu/gdext/pkg/gdext/mockhost"
)

func openTestHost(t *testing.T) *mockhost.Host {
	t.Helper()
	host := mockhost.New(4, 1, 0)
	lib, err := gdext.OpenWith(host.Interface(), gdext.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })
	return host
}

func TestGStringRoundTrip(t *testing.T) {
	openTestHost(t)

	cases := []string{
		"",
		"hello",
		"with spaces and\ttabs\n",
		"ünïcödé",
		"日本語のテキスト",
		"emoji 🎮🧩",
		strings.Repeat("long payload ", 512),
	}
	for _, s := range cases {
		g := gdext.NewGStringFromString(s)
		assert.Equal(t, s, g.String(), "round trip of %q", s)
		g.Destroy()
	}
}

func TestGStringDefaultIsEmpty(t *testing.T) {
	openTestHost(t)

	g := gdext.NewGString()
	defer g.Destroy()
	assert.Equal(t, "", g.String())
}

func TestGStringCloneIsIndependent(t *testing.T) {
	host := openTestHost(t)

	orig := gdext.NewGStringFromString("original")
	dup := orig.Clone()

	assert.Equal(t, 2, host.LiveStrings())
	assert.Equal(t, "original", dup.String())

	// Destroying the original must not invalidate the clone.
	orig.Destroy()
	assert.Equal(t, "original", dup.String())

	dup.Destroy()
	assert.Equal(t, 0, host.LiveStrings())
}

func TestGStringDestroyIsIdempotent(t *testing.T) {
	host := openTestHost(t)

	g := gdext.NewGStringFromString("once")
	g.Destroy()
	g.Destroy() // second call must not reach the host destructor again
	assert.Equal(t, 0, host.LiveStrings())
}

func TestGStringNoLeaksAcrossManyValues(t *testing.T) {
	host := openTestHost(t)

	for i := 0; i < 100; i++ {
		g := gdext.NewGStringFromString("transient")
		_ = g.String()
		g.Destroy()
	}
	assert.Equal(t, 0, host.LiveStrings())
}

func TestGStringNegativeMeasureIsFatal(t *testing.T) {
	host := openTestHost(t)

	g := gdext.NewGStringFromString("doomed")
	defer g.Destroy()

	host.FailMeasurements()
	assert.Panics(t, func() { _ = g.String() })
}

func TestLeakCStringIsNulTerminated(t *testing.T) {
	host := openTestHost(t)

	g := gdext.NewGStringFromString("legacy api")
	defer g.Destroy()

	ptr := g.LeakCString()
	require.NotNil(t, ptr)

	got := unsafe.Slice(ptr, len("legacy api")+1)
	assert.Equal(t, []byte("legacy api\x00"), got)

	// The block lives on the host allocator and is never freed by the
	// binding; that is the whole point of the legacy path.
	assert.Equal(t, 1, host.LiveAllocations())
}
