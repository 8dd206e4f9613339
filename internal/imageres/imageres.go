// Package imageres resolves image sources referenced from Markdown into
// bytes. The engine performs no network access: remote sources are
// reported as unavailable and the caller renders a placeholder.
package imageres

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageSize caps the bytes read for one local image.
const MaxImageSize = 32 << 20

// ErrResourceUnavailable indicates an image source could not be loaded.
var ErrResourceUnavailable = errors.New("resource unavailable")

// UnavailableError reports which source failed and why.
type UnavailableError struct {
	Source string
	Reason string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("resource unavailable: %s: %s", e.Source, e.Reason)
}

// Is reports whether target is ErrResourceUnavailable.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrResourceUnavailable
}

// Resolver loads the bytes of an image source.
type Resolver interface {
	Resolve(ctx context.Context, src string) ([]byte, error)
}

// Local serves preloaded bytes, data URIs and files under SourceDir.
// The zero value resolves only data URIs.
type Local struct {
	// SourceDir is the base for relative paths. Files outside it are rejected.
	SourceDir string
	// Images holds already-fetched bytes keyed by the source as written.
	Images map[string][]byte
}

// Compile-time interface check.
var _ Resolver = (*Local)(nil)

type schemeResolver func(l *Local, src string, u *url.URL) ([]byte, error)

var schemeResolvers = map[string]schemeResolver{
	"":      (*Local).resolveFile,
	"file":  (*Local).resolveFile,
	"data":  (*Local).resolveData,
	"http":  (*Local).resolveRemote,
	"https": (*Local).resolveRemote,
}

// Resolve returns the bytes for src. Preloaded Images take precedence over
// every scheme.
func (l *Local) Resolve(ctx context.Context, src string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, &UnavailableError{Source: src, Reason: "empty source"}
	}
	if data, ok := l.Images[src]; ok {
		return data, nil
	}

	scheme, u := splitScheme(src)
	resolve, ok := schemeResolvers[scheme]
	if !ok {
		return nil, &UnavailableError{Source: src, Reason: "unsupported scheme " + scheme}
	}
	return resolve(l, src, u)
}

// splitScheme returns the lowercased scheme of src. Windows drive letters
// and unparsable sources are treated as plain paths.
func splitScheme(src string) (string, *url.URL) {
	if strings.HasPrefix(strings.ToLower(src), "data:") {
		return "data", nil
	}
	u, err := url.Parse(src)
	if err != nil || len(u.Scheme) <= 1 {
		return "", nil
	}
	return strings.ToLower(u.Scheme), u
}

func (l *Local) resolveRemote(src string, _ *url.URL) ([]byte, error) {
	return nil, &UnavailableError{Source: src, Reason: "remote images are not fetched"}
}

func (l *Local) resolveData(src string, _ *url.URL) ([]byte, error) {
	meta, payload, ok := strings.Cut(src[len("data:"):], ",")
	if !ok {
		return nil, &UnavailableError{Source: truncate(src), Reason: "malformed data URI"}
	}
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(payload), ""))
		if err != nil {
			return nil, &UnavailableError{Source: truncate(src), Reason: "invalid base64: " + err.Error()}
		}
		return data, nil
	}
	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, &UnavailableError{Source: truncate(src), Reason: err.Error()}
	}
	return []byte(data), nil
}

func (l *Local) resolveFile(src string, u *url.URL) ([]byte, error) {
	if l.SourceDir == "" {
		return nil, &UnavailableError{Source: src, Reason: "no source directory for local images"}
	}
	p := src
	if u != nil {
		p = u.Path
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}

	baseDir, err := filepath.Abs(l.SourceDir)
	if err != nil {
		return nil, &UnavailableError{Source: src, Reason: err.Error()}
	}
	path := filepath.FromSlash(p)
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	if !isPathUnderDir(path, baseDir) {
		return nil, &UnavailableError{Source: src, Reason: "path escapes source directory"}
	}
	if err := verifyContainment(path, baseDir); err != nil {
		return nil, &UnavailableError{Source: src, Reason: err.Error()}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &UnavailableError{Source: src, Reason: "file not found"}
	}
	if info.IsDir() {
		return nil, &UnavailableError{Source: src, Reason: "is a directory"}
	}
	if info.Size() > MaxImageSize {
		return nil, &UnavailableError{Source: src, Reason: fmt.Sprintf("file too large (%d bytes)", info.Size())}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &UnavailableError{Source: src, Reason: err.Error()}
	}
	return data, nil
}

// isPathUnderDir checks if absPath is under dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	// Ensure dir ends with separator for correct prefix matching
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// verifyContainment resolves symlinks on both sides and re-checks the
// prefix. A missing file is left for the caller's Stat to report.
func verifyContainment(path, dir string) error {
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil
	}
	realDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if !isPathUnderDir(realPath, realDir) {
		return errors.New("path escapes source directory")
	}
	return nil
}

// MIMEHint guesses the media type of src from a data URI header or the
// file extension. It returns "" when nothing is known.
func MIMEHint(src string) string {
	src = strings.TrimSpace(src)
	if strings.HasPrefix(strings.ToLower(src), "data:") {
		meta, _, _ := strings.Cut(src[len("data:"):], ",")
		mt, _, _ := strings.Cut(meta, ";")
		return strings.ToLower(mt)
	}
	if u, err := url.Parse(src); err == nil && len(u.Scheme) > 1 {
		src = u.Path
	}
	ext := strings.ToLower(filepath.Ext(src))
	if ext == "" {
		return ""
	}
	if t := mime.TypeByExtension(ext); t != "" {
		mt, _, _ := strings.Cut(t, ";")
		return mt
	}
	return ""
}

func truncate(src string) string {
	const limit = 48
	if len(src) <= limit {
		return src
	}
	return src[:limit] + "..."
}
