package obfx

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/hengadev/obfx/internal/entropy"
)

var siteOrdinal atomic.Uint64

// Site identifies where a container was declared. Distinct sites yield
// distinct key material.
type Site struct {
	Location string
	Time     string
	Ordinal  uint64
	// Kernel selects the timestamp-free seed derivation.
	Kernel bool
}

// NewSite returns the site for location, build time and call ordinal.
func NewSite(location, buildTime string, ordinal uint64) Site {
	return Site{Location: location, Time: buildTime, Ordinal: ordinal}
}

// NewKernelSite returns a site whose seed ignores the build time.
func NewKernelSite(location string, ordinal uint64) Site {
	return Site{Location: location, Ordinal: ordinal, Kernel: true}
}

// Here returns a site for the caller's file and line, stamped with BuildTime
// and a process-wide ordinal. Keys built from it are derived at run time, so
// the plaintext passed to New still appears in the binary; use obfx-gen for
// literals that must not.
func Here() Site {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file = "unknown"
	}
	return NewSite(fmt.Sprintf("%s:%d", file, line), BuildTime, siteOrdinal.Add(1))
}

// Seed derives the 64-bit seed for the site.
func (s Site) Seed() uint64 {
	if s.Kernel {
		return entropy.DeriveSeedKernel(s.Location, s.Ordinal)
	}
	return entropy.DeriveSeed(s.Location, s.Time, s.Ordinal)
}

func (s Site) String() string {
	return fmt.Sprintf("%s#%d", s.Location, s.Ordinal)
}
