package render

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/sprinkler-layout/internal/fsutil"
	"github.com/banshee-data/sprinkler-layout/internal/monitoring"
)

// ExportIOError reports a failure to write an artifact. It is returned as is;
// nothing is retried.
type ExportIOError struct {
	Path string
	Err  error
}

func (e *ExportIOError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportIOError) Unwrap() error { return e.Err }

// Export writes the standalone HTML page of h to dest on fsys.
func Export(h *Handle, fsys fsutil.FileSystem, dest string) error {
	if dest == "" {
		return &ExportIOError{Path: dest, Err: fmt.Errorf("no destination")}
	}
	if err := fsutil.WriteTo(fsys, dest, bytes.NewReader(h.html)); err != nil {
		return &ExportIOError{Path: dest, Err: err}
	}
	monitoring.Logf("exported %s (%d bytes)", dest, len(h.html))
	return nil
}

// ExportPlan writes the plan view of h to dest. The image format follows the
// file extension (.png, .svg, .pdf, .jpg).
func ExportPlan(h *Handle, fsys fsutil.FileSystem, dest string) error {
	format, err := PlanFormat(dest)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.WritePlan(&buf, format); err != nil {
		return err
	}
	if err := fsutil.WriteTo(fsys, dest, &buf); err != nil {
		return &ExportIOError{Path: dest, Err: err}
	}
	monitoring.Logf("exported plan view %s", dest)
	return nil
}

// PlanFormat maps a file name to a plan-view image format.
func PlanFormat(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "png", "svg", "pdf":
		return ext, nil
	case "jpg", "jpeg":
		return "jpg", nil
	}
	return "", fmt.Errorf("unsupported plan view format %q (use .png, .svg, .pdf or .jpg)", filepath.Ext(path))
}
