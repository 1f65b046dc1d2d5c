// Package tldr implements the tldr command line client.
package tldr

import (
	"embed"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tldr/internal/version"
	"github.com/arthur-debert/tldr/pkg/cache"
	"github.com/arthur-debert/tldr/pkg/cobrax/topics"
	"github.com/arthur-debert/tldr/pkg/config"
	"github.com/arthur-debert/tldr/pkg/errors"
	"github.com/arthur-debert/tldr/pkg/filesystem"
	"github.com/arthur-debert/tldr/pkg/languages"
	"github.com/arthur-debert/tldr/pkg/logging"
	"github.com/arthur-debert/tldr/pkg/pager"
	"github.com/arthur-debert/tldr/pkg/paths"
	"github.com/arthur-debert/tldr/pkg/render"
	"github.com/arthur-debert/tldr/pkg/types"
	"github.com/arthur-debert/tldr/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// errPageNotFound is returned after the not-found help has been printed.
var errPageNotFound = stderrors.New("page not found")

// IsReported reports whether err was already explained to the user and
// only needs a non-zero exit status.
func IsReported(err error) bool {
	return stderrors.Is(err, errPageNotFound)
}

type rootOptions struct {
	verbosity  int
	list       bool
	render     string
	platform   string
	language   string
	update     bool
	clearCache bool
	pager      bool
	quiet      bool
	markdown   bool
	showPaths  bool
	configPath bool
	seedConfig bool
	color      string
	topic      string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(cache.DefaultArchiveURL)
}

func newRootCmd(archiveURL string) *cobra.Command {
	initTemplateFormatting()

	tm, err := topics.New(topicsFS, "topics", topics.Options{
		Extensions: []string{".md"},
		AppName:    "tldr",
	})
	if err != nil {
		panic(fmt.Sprintf("embedded help topics: %v", err))
	}

	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:     "tldr [command...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &runner{
				cmd:        cmd,
				opts:       opts,
				topics:     tm,
				archiveURL: archiveURL,
				out:        cmd.OutOrStdout(),
				errOut:     cmd.ErrOrStderr(),
			}
			return r.run(args)
		},
		ValidArgsFunction: pageNamesCompletion,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("tldr %s\n  commit: %s\n  built:  %s\n",
		version.Version, version.Commit, version.Date))
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.list, "list", "l", false, MsgFlagList)
	flags.StringVarP(&opts.render, "render", "f", "", MsgFlagRender)
	flags.StringVarP(&opts.platform, "platform", "p", "", MsgFlagPlatform)
	flags.StringVarP(&opts.platform, "os", "o", "", MsgFlagOS)
	flags.StringVarP(&opts.language, "language", "L", "", MsgFlagLanguage)
	flags.BoolVarP(&opts.update, "update", "u", false, MsgFlagUpdate)
	flags.BoolVarP(&opts.clearCache, "clear-cache", "c", false, MsgFlagClearCache)
	flags.BoolVar(&opts.pager, "pager", false, MsgFlagPager)
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, MsgFlagQuiet)
	flags.BoolVarP(&opts.markdown, "markdown", "m", false, MsgFlagMarkdown)
	flags.BoolVar(&opts.showPaths, "show-paths", false, MsgFlagShowPaths)
	flags.BoolVar(&opts.configPath, "config-path", false, MsgFlagConfigPath)
	flags.BoolVar(&opts.seedConfig, "seed-config", false, MsgFlagSeedConfig)
	flags.StringVar(&opts.color, "color", ui.ColorAuto.String(), MsgFlagColor)
	flags.CountVar(&opts.verbosity, "verbose", MsgFlagVerbose)
	flags.StringVar(&opts.topic, "topic", "", MsgFlagTopic)

	_ = flags.MarkHidden("os")
	_ = flags.MarkHidden("config-path")

	_ = rootCmd.RegisterFlagCompletionFunc("platform", platformCompletion)
	_ = rootCmd.RegisterFlagCompletionFunc("os", platformCompletion)
	_ = rootCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(ui.ColorModeNames(), cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.RegisterFlagCompletionFunc("topic", tm.CompletionFunc())
	_ = rootCmd.MarkFlagFilename("render", "md")

	return rootCmd
}

// runner carries one invocation of the root command.
type runner struct {
	cmd        *cobra.Command
	opts       *rootOptions
	topics     *topics.TopicManager
	archiveURL string
	out        io.Writer
	errOut     io.Writer
	status     *statusPrinter
}

func (r *runner) run(args []string) (err error) {
	logger := logging.GetLogger("cmd")
	opts := r.opts

	mode, err := ui.ParseColorMode(opts.color)
	if err != nil {
		return fmt.Errorf(MsgErrBadColor, err)
	}
	styled := ui.ShouldStyle(mode, asFile(r.out))
	r.status = newStatusPrinter(r.errOut, ui.ShouldStyle(mode, asFile(r.errOut)), opts.quiet)
	profile := ui.Profile(asFile(r.out))

	if opts.topic != "" {
		r.topics.SetRenderer(topics.NewGlamourRenderer(styled))
		return r.topics.Show(r.out, opts.topic)
	}

	acted := false
	if opts.configPath {
		acted = true
		r.status.warn("Warning: " + MsgConfigPathWarning)
		path, _, err := paths.ConfigPath()
		if err != nil {
			return fmt.Errorf(MsgErrConfigPath, err)
		}
		fmt.Fprintf(r.out, MsgConfigPath+"\n", path)
	}
	if opts.showPaths {
		acted = true
		r.printPaths()
	}
	if opts.seedConfig {
		return r.seedConfig()
	}

	configFile, _, err := paths.ConfigPath()
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	overrides := map[string]any{}
	if opts.pager {
		overrides["display.use_pager"] = true
	}
	cfg, err := config.Load(configFile, overrides)
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}

	if cfg.Display.UsePager {
		p, perr := pager.Start("", r.out)
		switch {
		case stderrors.Is(perr, pager.ErrUnsupported):
			r.status.warn("Warning: " + MsgPagerUnsupported)
		case perr != nil:
			return fmt.Errorf(MsgErrStartPager, perr)
		default:
			r.out = p
			defer func() {
				if cerr := p.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
		}
	}

	platform := types.DetectPlatform()
	if opts.platform != "" {
		platform, err = types.ParsePlatform(opts.platform)
		if err != nil {
			return fmt.Errorf(MsgErrBadPlatform, err)
		}
	}
	logger.Debug().Str("platform", platform.String()).Bool("styled", styled).Msg("Resolved environment")

	c := cache.New(r.archiveURL, platform,
		cache.WithHTTPClient(&http.Client{Timeout: cfg.Updates.Timeout}))

	if opts.clearCache {
		acted = true
		if err := c.Clear(); err != nil {
			return fmt.Errorf(MsgErrClearCache, err)
		}
		if !opts.quiet {
			fmt.Fprintln(r.out, MsgCacheDeleted)
		}
	}

	updated := false
	if opts.update || autoUpdateDue(cfg, c) {
		acted = true
		err := r.status.spin(MsgCacheUpdating, func() error {
			return c.Update(r.cmd.Context())
		})
		if err != nil {
			return fmt.Errorf(MsgErrUpdateCache, err)
		}
		updated = true
		if !opts.quiet {
			fmt.Fprintln(r.out, MsgCacheUpdated)
		}
	}

	printOpts := render.PrintOptions{
		Raw:     opts.markdown,
		Style:   cfg.StyleConfig(styled),
		Compact: cfg.Display.Compact,
		Profile: profile,
	}

	if opts.render != "" {
		return render.PrintPage(r.out, filesystem.NewOS(), cache.WithPage(opts.render), printOpts)
	}

	if opts.list {
		if !updated {
			if err := r.checkCache(c); err != nil {
				return err
			}
		}
		pages, err := c.ListPages()
		if err != nil {
			return fmt.Errorf(MsgErrListPages, err)
		}
		fmt.Fprintln(r.out, strings.Join(pages, "\n"))
		return nil
	}

	if len(args) > 0 {
		return r.showPage(c, args, updated, cfg, printOpts)
	}

	if !acted {
		return r.cmd.Help()
	}
	return nil
}

func (r *runner) showPage(c *cache.Cache, args []string, updated bool, cfg *config.Config, printOpts render.PrintOptions) error {
	command := strings.ToLower(strings.Join(args, "-"))

	if !updated {
		if err := r.checkCache(c); err != nil {
			return err
		}
	}

	langs := languages.FromEnv()
	if r.opts.language != "" {
		langs = []string{r.opts.language}
	}

	page, err := c.FindPage(command, langs, cfg.Directories.CustomPagesDir)
	if err != nil {
		return err
	}
	if page == nil {
		if !r.opts.quiet {
			fmt.Fprintf(r.out, MsgPageNotFound+"\n", command)
		}
		return errPageNotFound
	}
	return render.PrintPage(r.out, c.FS(), page, printOpts)
}

// checkCache fails when the cache was never populated and warns when it is
// older than cache.MaxAge.
func (r *runner) checkCache(c *cache.Cache) error {
	if _, _, err := c.Root(); err != nil {
		return err
	}

	age, ok := c.LastUpdate()
	if !ok {
		return errors.New(errors.ErrCache, MsgErrCacheNotFound)
	}
	if age > cache.MaxAge && !r.opts.quiet {
		r.status.warn(fmt.Sprintf(MsgStaleCache, int(cache.MaxAge.Hours()/24)))
	}
	return nil
}

func autoUpdateDue(cfg *config.Config, c *cache.Cache) bool {
	if !cfg.Updates.AutoUpdate {
		return false
	}
	age, ok := c.LastUpdate()
	return !ok || age >= cfg.AutoUpdateInterval()
}

func (r *runner) seedConfig() error {
	path, _, err := paths.ConfigPath()
	if err != nil {
		return fmt.Errorf(MsgErrSeedConfig, err)
	}
	if err := config.Seed(path); err != nil {
		return fmt.Errorf(MsgErrSeedConfig, err)
	}
	fmt.Fprintf(r.out, MsgConfigSeeded+"\n", path)
	return nil
}

func (r *runner) printPaths() {
	configDir := describeDir(paths.ConfigDir())

	configPath, _, err := paths.ConfigPath()
	if err != nil {
		configPath = fmt.Sprintf(MsgPathError, err)
	}

	cacheRoot, source, err := paths.CacheDir()
	cacheDir := describeDir(cacheRoot, source, err)
	pagesDir := fmt.Sprintf(MsgPathError, err)
	if err == nil {
		pagesDir = withSeparator(filepath.Join(cacheRoot, cache.PagesDirName))
	}

	fmt.Fprintf(r.out, MsgShowPaths+"\n", configDir, configPath, cacheDir, pagesDir)
}

func describeDir(dir string, source paths.Source, err error) string {
	if err != nil {
		return fmt.Sprintf(MsgPathError, err)
	}
	return fmt.Sprintf(MsgPathWithSource, withSeparator(dir), source)
}

func withSeparator(dir string) string {
	return dir + string(filepath.Separator)
}

// asFile returns w as a file when it is one, for terminal detection.
func asFile(w io.Writer) *os.File {
	f, _ := w.(*os.File)
	return f
}

// pageNamesCompletion provides shell completion for cached page names
func pageNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	platform := types.DetectPlatform()
	if name, _ := cmd.Flags().GetString("platform"); name != "" {
		if p, err := types.ParsePlatform(name); err == nil {
			platform = p
		}
	}

	pages, err := cache.New(cache.DefaultArchiveURL, platform).ListPages()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, page := range pages {
		if strings.HasPrefix(page, toComplete) {
			completions = append(completions, page)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func platformCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return types.PlatformNames(), cobra.ShellCompDirectiveNoFileComp
}
