package gdext

import (
	"fmt"

	"github.com/coreos/go-semver/semver"

	"github.com/Ughuuu/gdext/internal/ffi"
)

// Version identifies a host interface generation as a (major, minor, patch)
// triple plus the host's own display string.
type Version struct {
	Major  uint32
	Minor  uint32
	Patch  uint32
	String string
}

// Triple renders the numeric part, e.g. "4.1.0".
func (v Version) Triple() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v Version) display() string {
	if v.String != "" {
		return v.String
	}
	return "v" + v.Triple()
}

func (v Version) semver() semver.Version {
	return semver.Version{
		Major: int64(v.Major),
		Minor: int64(v.Minor),
		Patch: int64(v.Patch),
	}
}

func versionFromFFI(v ffi.Version) Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, String: v.String}
}

// Version the binding is compiled against. The running host must report at
// least this version during negotiation.
const (
	staticMajor = 4
	staticMinor = 1
	staticPatch = 0
	staticLevel = "stable"
)

// StaticVersionString returns the compiled-against version's display string.
func StaticVersionString() string {
	return StaticVersion().String
}

// StaticVersion returns the host version this binding was compiled against.
func StaticVersion() Version {
	return Version{
		Major:  staticMajor,
		Minor:  staticMinor,
		Patch:  staticPatch,
		String: fmt.Sprintf("v%d.%d.%d.%s", staticMajor, staticMinor, staticPatch, staticLevel),
	}
}

// VersionError reports an incompatible host. It is always fatal: no host
// function can be trusted once negotiation has failed.
type VersionError struct {
	Static  Version
	Runtime Version

	// Legacy marks a 4.0-generation host detected through the entry-point
	// probe; such hosts pass an interface struct where modern hosts pass a
	// function, so no table can be resolved from them at all.
	Legacy bool

	// TooNew marks a host whose major version exceeds the binding's; its
	// table layout may have entries the binding does not know about.
	TooNew bool
}

func (e *VersionError) Error() string {
	switch {
	case e.Legacy:
		return fmt.Sprintf(
			"gdext was compiled against a newer host version: %s\n"+
				"but loaded by a legacy host binary, with version: %s\n"+
				"\n"+
				"Update your host engine to %s or newer.\n",
			e.Static.display(), e.Runtime.display(), e.Static.Triple())
	case e.TooNew:
		return fmt.Sprintf(
			"gdext was compiled against host version %s,\n"+
				"but the running host reports major version %d (%s); the binding is too old.\n"+
				"\n"+
				"Update the gdext binding to a release matching your host engine.\n",
			e.Static.display(), e.Runtime.Major, e.Runtime.display())
	default:
		return fmt.Sprintf(
			"gdext was compiled against a newer host version: %s\n"+
				"but loaded by an older host binary, with version: %s\n"+
				"\n"+
				"Update your host engine version, or compile gdext against an older one.\n",
			e.Static.display(), e.Runtime.display())
	}
}

// ensureCompatible verifies runtime >= static by ordered semver comparison,
// and rejects hosts a full major generation ahead.
func ensureCompatible(static, runtime Version) error {
	if runtime.Major > static.Major {
		return &VersionError{Static: static, Runtime: runtime, TooNew: true}
	}
	rt, st := runtime.semver(), static.semver()
	if rt.LessThan(st) {
		return &VersionError{Static: static, Runtime: runtime}
	}
	return nil
}
