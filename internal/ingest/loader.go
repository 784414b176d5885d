package ingest

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/apperr"
)

// PageSet is a loaded file: its base name plus one text entry per page.
// Plain-text formats load as a single page.
type PageSet struct {
	SourceFile string
	Pages      []string
}

// CommandRunner executes an external converter. Injected so tests can stub
// the pdftotext dependency.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Loader reads policy files into page texts. Supported: .txt and .md read
// directly, .pdf converted through pdftotext (pages split on form feed).
type Loader struct {
	runner CommandRunner
}

func NewLoader() *Loader {
	return &Loader{runner: execRunner{}}
}

func NewLoaderWithRunner(runner CommandRunner) *Loader {
	return &Loader{runner: runner}
}

func (l *Loader) Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".pdf":
		return true
	}
	return false
}

func (l *Loader) Load(ctx context.Context, path string) (*PageSet, error) {
	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindIngest, err, "failed to read %s", name)
		}
		return &PageSet{SourceFile: name, Pages: splitPages(string(data))}, nil
	case ".pdf":
		out, err := l.runner.Run(ctx, "pdftotext", path, "-")
		if err != nil {
			return nil, apperr.Wrap(apperr.KindIngest, err, "pdftotext failed for %s", name)
		}
		return &PageSet{SourceFile: name, Pages: splitPages(string(out))}, nil
	}
	return nil, apperr.New(apperr.KindIngest, "unsupported file type: %s", name)
}

// splitPages splits converter output on form feeds, the page separator
// pdftotext emits. Text without form feeds is one page. Blank pages are kept
// so page numbers stay aligned with the source document; only the single
// empty element after the final form feed is dropped, so a document that
// genuinely ends in a blank page keeps it.
func splitPages(text string) []string {
	parts := strings.Split(text, "\f")
	if len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
