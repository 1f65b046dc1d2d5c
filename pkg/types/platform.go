package types

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is the operating-system category a page variant applies to.
type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformOSX     Platform = "osx"
	PlatformSunOS   Platform = "sunos"
	PlatformWindows Platform = "windows"
	PlatformAndroid Platform = "android"
	PlatformFreeBSD Platform = "freebsd"
	PlatformNetBSD  Platform = "netbsd"
	PlatformOpenBSD Platform = "openbsd"

	// PlatformOther has no page directory of its own; only common pages apply
	PlatformOther Platform = "other"
)

// CommonDir holds pages that apply to every platform.
const CommonDir = "common"

var platformNames = map[string]Platform{
	"linux":   PlatformLinux,
	"osx":     PlatformOSX,
	"macos":   PlatformOSX,
	"sunos":   PlatformSunOS,
	"windows": PlatformWindows,
	"android": PlatformAndroid,
	"freebsd": PlatformFreeBSD,
	"netbsd":  PlatformNetBSD,
	"openbsd": PlatformOpenBSD,
	"other":   PlatformOther,
}

// PlatformNames lists the values accepted by ParsePlatform, in display order.
func PlatformNames() []string {
	return []string{"linux", "macos", "sunos", "windows", "android", "freebsd", "netbsd", "openbsd"}
}

// ParsePlatform maps a user-supplied name to a Platform. "macos" and "osx"
// are synonyms.
func ParsePlatform(name string) (Platform, error) {
	if p, ok := platformNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown platform %q (valid: %s)", name, strings.Join(PlatformNames(), ", "))
}

// DetectPlatform returns the platform of the running binary.
func DetectPlatform() Platform {
	return platformForGOOS(runtime.GOOS)
}

func platformForGOOS(goos string) Platform {
	switch goos {
	case "linux":
		return PlatformLinux
	case "darwin", "ios":
		return PlatformOSX
	case "windows":
		return PlatformWindows
	case "android":
		return PlatformAndroid
	case "freebsd", "dragonfly":
		return PlatformFreeBSD
	case "netbsd":
		return PlatformNetBSD
	case "openbsd":
		return PlatformOpenBSD
	case "solaris", "illumos":
		return PlatformSunOS
	default:
		return PlatformOther
	}
}

// Dir returns the page directory name for the platform, or "" when the
// platform has none.
func (p Platform) Dir() string {
	if p == PlatformOther || p == "" {
		return ""
	}
	return string(p)
}

// SearchDirs returns the platform directories to check, most specific first.
func (p Platform) SearchDirs() []string {
	if dir := p.Dir(); dir != "" {
		return []string{dir, CommonDir}
	}
	return []string{CommonDir}
}

func (p Platform) String() string {
	return string(p)
}
