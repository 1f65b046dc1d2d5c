// Package topics serves long-form help topics for a Cobra CLI from a file
// system, typically an embed.FS compiled into the binary.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// ListKeyword asks for the list of topics instead of a topic.
const ListKeyword = "list"

// TopicManager holds the help topics of a Cobra application
type TopicManager struct {
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
	appName    string
}

// Topic represents a help topic
type Topic struct {
	Name     string
	FilePath string
	Content  string
}

// Options configures the TopicManager
type Options struct {
	// Extensions is the list of file extensions to consider as topics
	// Defaults to [".txt", ".md"] if not specified
	Extensions []string

	// Renderer for formatting topic content (optional)
	// Defaults to PlainRenderer if not specified
	Renderer Renderer

	// AppName is used in the hint printed under the topic list
	AppName string
}

// New loads all topics found under dir in fsys.
func New(fsys fs.FS, dir string, opts Options) (*TopicManager, error) {
	tm := &TopicManager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
		appName:    opts.AppName,
	}
	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}

	if err := tm.scanTopics(fsys, dir); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}
	return tm, nil
}

// SetRenderer replaces the renderer used by Show.
func (tm *TopicManager) SetRenderer(r Renderer) {
	tm.renderer = r
}

func (tm *TopicManager) scanTopics(fsys fs.FS, dir string) error {
	return fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !tm.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		tm.topics[name] = &Topic{
			Name:     name,
			FilePath: p,
			Content:  string(content),
		}
		return nil
	})
}

func (tm *TopicManager) supported(ext string) bool {
	for _, valid := range tm.extensions {
		if ext == valid {
			return true
		}
	}
	return false
}

// GetTopic retrieves a topic by name
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	topic, exists := tm.topics[strings.ToLower(strings.TrimSpace(name))]
	return topic, exists
}

// ListTopics returns all available topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Show writes the named topic, or the topic list for ListKeyword, to w.
func (tm *TopicManager) Show(w io.Writer, name string) error {
	if name == ListKeyword {
		return tm.WriteList(w)
	}

	topic, ok := tm.GetTopic(name)
	if !ok {
		return fmt.Errorf("unknown help topic %q (available: %s)", name, strings.Join(tm.ListTopics(), ", "))
	}

	_, err := io.WriteString(w, tm.renderer.Render(topic.Content, path.Ext(topic.FilePath)))
	return err
}

// WriteList prints the available topics.
func (tm *TopicManager) WriteList(w io.Writer) error {
	topics := tm.ListTopics()
	if len(topics) == 0 {
		_, err := fmt.Fprintln(w, "No help topics available.")
		return err
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n")
	for _, name := range topics {
		fmt.Fprintf(&b, "  %s\n", name)
	}
	if tm.appName != "" {
		fmt.Fprintf(&b, "\nUse '%s --topic <topic>' to read about a specific topic.\n", tm.appName)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// CompletionFunc completes topic names for a flag.
func (tm *TopicManager) CompletionFunc() func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		completions := append([]string{ListKeyword}, tm.ListTopics()...)
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}
