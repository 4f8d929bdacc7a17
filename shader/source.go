package shader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/mobile/asset"
)

// ReadSource reads shader text from r.  Line endings are normalised to "\n"
// and a trailing newline is guaranteed.
func ReadSource(r io.Reader) (string, error) {
	var b strings.Builder
	s := bufio.NewScanner(r)
	for s.Scan() {
		b.WriteString(strings.TrimRight(s.Text(), "\r"))
		b.WriteByte('\n')
	}
	if err := s.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// LoadSource reads the shader asset at path, as bundled by gomobile from the
// application's assets directory.
func LoadSource(stage Stage, path string) (Source, error) {
	f, err := asset.Open(path)
	if err != nil {
		return Source{}, fmt.Errorf("shader: open %s source %s: %w", stage, path, err)
	}
	defer f.Close()
	text, err := ReadSource(f)
	if err != nil {
		return Source{}, fmt.Errorf("shader: read %s source %s: %w", stage, path, err)
	}
	if strings.TrimSpace(text) == "" {
		return Source{}, &CompileError{Stage: stage, Log: fmt.Sprintf("empty source in %s", path)}
	}
	return Source{Stage: stage, Text: text}, nil
}
