package tldr

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort = "A fast tldr-pages client"

	// Status messages
	MsgCacheDeleted      = "Successfully deleted cache."
	MsgCacheUpdated      = "Successfully updated cache."
	MsgCacheUpdating     = "Updating cache"
	MsgConfigSeeded      = "Successfully created seed config file here: %s"
	MsgConfigPath        = "Config path is: %s"
	MsgConfigPathWarning = "The --config-path flag is deprecated, use --show-paths instead"
	MsgPagerUnsupported  = "-p / --pager flag not available on this platform"
	MsgPathWithSource    = "%s (%s)"
	MsgPathError         = "[Error: %s]"

	// Error messages
	MsgErrCacheNotFound = "Cache not found. Please run `tldr --update`."
	MsgErrClearCache    = "could not delete cache: %w"
	MsgErrUpdateCache   = "could not update cache: %w"
	MsgErrListPages     = "could not get list of pages: %w"
	MsgErrLoadConfig    = "could not load config: %w"
	MsgErrSeedConfig    = "could not create seed config: %w"
	MsgErrConfigPath    = "could not look up config path: %w"
	MsgErrStartPager    = "could not start pager: %w"
	MsgErrBadPlatform   = "invalid --platform: %w"
	MsgErrBadColor      = "invalid --color: %w"

	// Flag descriptions
	MsgFlagList       = "List all commands in the cache"
	MsgFlagRender     = "Render a specific markdown file"
	MsgFlagPlatform   = "Override the operating system [linux, osx, sunos, windows, android, freebsd, netbsd, openbsd]"
	MsgFlagOS         = "Alias for --platform"
	MsgFlagLanguage   = "Override the language"
	MsgFlagUpdate     = "Update the local cache"
	MsgFlagClearCache = "Clear the local cache"
	MsgFlagPager      = "Use a pager to page output"
	MsgFlagQuiet      = "Suppress informational messages"
	MsgFlagMarkdown   = "Display the raw markdown instead of rendering it"
	MsgFlagShowPaths  = "Show file and directory paths used by tldr"
	MsgFlagConfigPath = "Show config file path (deprecated)"
	MsgFlagSeedConfig = "Create a basic config"
	MsgFlagColor      = "Control whether to use color [always, auto, never]"
	MsgFlagVerbose    = "Increase verbosity (--verbose INFO, twice DEBUG, three times TRACE)"
	MsgFlagTopic      = "Show a help topic, or 'list' for all topics"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/page-not-found.txt
	msgPageNotFoundRaw string
	MsgPageNotFound    = strings.TrimSpace(msgPageNotFoundRaw)

	//go:embed msgs/stale-cache.txt
	msgStaleCacheRaw string
	MsgStaleCache    = strings.TrimSpace(msgStaleCacheRaw)

	//go:embed msgs/usage-template.txt
	MsgUsageTemplate string

	//go:embed msgs/show-paths.txt
	msgShowPathsRaw string
	MsgShowPaths    = strings.TrimSpace(msgShowPathsRaw)
)
