package obfx

import (
	"fmt"

	"github.com/hengadev/obfx/internal/cipher"
)

// Version of the obfx library
const Version = "1.0.0"

// Build information (set by ldflags during build)
var (
	GitCommit string
	BuildDate string
	// BuildTime feeds the seed of sites created with Here. Set it with
	// -ldflags "-X github.com/hengadev/obfx.BuildTime=15:04:05".
	BuildTime string
)

// VersionInfo returns formatted version information
func VersionInfo() string {
	if GitCommit == "" {
		return fmt.Sprintf("obfx v%s", Version)
	}
	return fmt.Sprintf("obfx v%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}

// FullVersionInfo returns complete version information including the decrypt
// kernel selected for this CPU
func FullVersionInfo() VersionDetails {
	return VersionDetails{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		Kernel:    cipher.Kernel(),
	}
}

// VersionDetails contains detailed version information
type VersionDetails struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	Kernel    string `json:"kernel"`
}

// String returns a formatted version string
func (v VersionDetails) String() string {
	if len(v.GitCommit) < 7 {
		return fmt.Sprintf("v%s [%s]", v.Version, v.Kernel)
	}
	return fmt.Sprintf("v%s-%s (%s) [%s]", v.Version, v.GitCommit[:7], v.BuildDate, v.Kernel)
}
