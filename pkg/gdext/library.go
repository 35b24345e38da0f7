package gdext

import (
	"fmt"
	"sync"

	"github.com/Ughuuu/gdext/internal/ffi"
	"github.com/Ughuuu/gdext/pkg/gdext/logging"
)

// EntryToken is the raw value the host passes to the extension entry point.
type EntryToken uintptr

// Config expresses the knobs for opening the host interface.
type Config struct {
	// MinVersion overrides the compiled-against minimum during negotiation.
	// Leave nil to require StaticVersion.
	MinVersion *Version

	// Logger receives negotiation diagnostics. Leave nil for slog.Default().
	Logger logging.Logger
}

func (c Config) logger() logging.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.New(nil)
}

// Library is the negotiated, process-wide handle to the host interface. At
// most one Library is open per process; its function table is immutable for
// the rest of the process and read by every other component.
type Library struct {
	iface   *ffi.Interface
	runtime Version
	log     logging.Logger
	closed  bool

	// String function pointers, resolved lazily and cached once per
	// operation kind. Redundant racing initializations resolve to the same
	// idempotent value; OnceValue additionally collapses them.
	strDefaultCtor func() ffi.PtrConstructor
	strCopyCtor    func() ffi.PtrConstructor
	strDtor        func() ffi.PtrDestructor
}

var (
	globalMu  sync.Mutex
	globalLib *Library
)

// OpenHostLibrary loads the shared library at path and returns the address of
// its named entry symbol as an EntryToken. This is the out-of-process probing
// path (cmd/gdext-probe); in-process extensions receive their token directly
// from the host.
func OpenHostLibrary(path, symbol string) (EntryToken, error) {
	token, err := ffi.OpenHostLibrary(path, symbol)
	if err != nil {
		return 0, remapError(err)
	}
	return EntryToken(token), nil
}

// Open negotiates the host interface behind token: the legacy-generation
// probe runs first, then the function table is resolved by name and the
// runtime version checked against the compiled-against one. On success the
// Library becomes process-wide state read by every other component.
//
// Failure means the host cannot be trusted at all; callers at the extension
// entry point should treat it as fatal (see MustOpen).
func Open(token EntryToken, cfg Config) (*Library, error) {
	if token == 0 {
		return nil, remapError(ffi.ErrNilEntryToken)
	}

	if legacy, ok := ffi.DetectLegacy(ffi.EntryToken(token)); ok {
		return nil, &VersionError{
			Static:  StaticVersion(),
			Runtime: versionFromFFI(*legacy),
			Legacy:  true,
		}
	}

	iface, err := ffi.Load(ffi.EntryToken(token))
	if err != nil {
		return nil, remapError(err)
	}
	return OpenWith(iface, cfg)
}

// OpenWith negotiates against an already-resolved interface table. It is the
// seam for in-process hosts and tests (see the mockhost package); Open funnels
// into it.
func OpenWith(iface *ffi.Interface, cfg Config) (*Library, error) {
	if err := iface.Validate(); err != nil {
		return nil, remapError(err)
	}

	static := StaticVersion()
	if cfg.MinVersion != nil {
		static = *cfg.MinVersion
	}
	runtime := versionFromFFI(iface.GetGodotVersion())
	if err := ensureCompatible(static, runtime); err != nil {
		return nil, err
	}

	lib := &Library{
		iface:   iface,
		runtime: runtime,
		log:     cfg.logger(),
	}
	lib.strDefaultCtor = sync.OnceValue(func() ffi.PtrConstructor {
		return lib.mustCtor(ffi.CtorDefault)
	})
	lib.strCopyCtor = sync.OnceValue(func() ffi.PtrConstructor {
		return lib.mustCtor(ffi.CtorCopy)
	})
	lib.strDtor = sync.OnceValue(func() ffi.PtrDestructor {
		dtor := lib.iface.VariantGetPtrDestructor(ffi.TypeTagString)
		if dtor == nil {
			panic("gdext: host has no String destructor")
		}
		return dtor
	})

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLib != nil {
		return nil, ErrAlreadyLoaded
	}
	globalLib = lib

	lib.log.Info(nil, "host interface negotiated",
		"runtime", runtime.display(),
		"static", static.display(),
	)
	return lib, nil
}

// MustOpen is Open for the extension entry point: negotiation failure panics
// with the full diagnostic, since nothing can safely run without a verified
// function table.
func MustOpen(token EntryToken, cfg Config) *Library {
	lib, err := Open(token, cfg)
	if err != nil {
		panic(fmt.Sprintf("gdext: host negotiation failed:\n%v", err))
	}
	return lib
}

// Close releases the process-wide slot. It is idempotent, returning
// ErrLibraryClosed when called twice. Host-side values created under this
// library must not be used afterwards.
func (l *Library) Close() error {
	if l == nil {
		return nil
	}
	if l.closed {
		return ErrLibraryClosed
	}
	l.closed = true

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLib == l {
		globalLib = nil
	}
	return nil
}

// RuntimeVersion returns the version the host reported during negotiation.
func (l *Library) RuntimeVersion() Version {
	return l.runtime
}

func (l *Library) mustCtor(variant int32) ffi.PtrConstructor {
	ctor := l.iface.VariantGetPtrConstructor(ffi.TypeTagString, variant)
	if ctor == nil {
		panic(fmt.Sprintf("gdext: host has no String constructor (variant %d)", variant))
	}
	return ctor
}

// activeLibrary returns the process-wide library, panicking before Open: a
// missing table is the fatal class, not a recoverable condition.
func activeLibrary() *Library {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLib == nil {
		panic(ErrNotLoaded.Error())
	}
	return globalLib
}
