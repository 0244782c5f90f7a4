package iodataset

import (
	"fmt"
	"strings"

	"github.com/MinhHuy1507/agriseed/pkg/errcode"
	"github.com/gnames/gn"
)

// ManifestError creates an error for when datasets.yaml cannot be
// loaded.
func ManifestError(path string, err error) error {
	msg := `Cannot load datasets manifest

<em>Manifest file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Invalid dataset declaration

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Delete the file and re-run to regenerate the default manifest`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.DatasetManifestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load datasets manifest: %w", err),
	}
}

// ReadError creates an error for an unreadable dataset source.
func ReadError(name, path string, err error) error {
	msg := `Cannot read dataset <em>%s</em>

<em>File:</em> %s

<em>How to fix:</em>
  1. Check the file exists and is readable
  2. Verify the path in datasets.yaml`

	vars := []any{name, path}

	return &gn.Error{
		Code: errcode.DatasetReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read dataset %s (%s): %w",
			name, path, err),
	}
}

// FormatError creates an error for a structural mismatch between the
// dataset and its manifest declaration. The whole load aborts; no rows
// past the mismatch are yielded. A non-nil cause carries the parser
// detail, like the line number of a ragged CSV record.
func FormatError(name, path string, expected, missing []string, cause error) error {
	msg := `Dataset <em>%s</em> does not match its declared shape

<em>File:</em> %s
<em>Expected columns:</em> %s
<em>Missing columns:</em> %s

<em>How to fix:</em>
  1. Compare the file header against datasets.yaml
  2. Update the column mapping or replace the file`

	missingStr := "n/a"
	if len(missing) > 0 {
		missingStr = strings.Join(missing, ", ")
	}
	vars := []any{name, path, strings.Join(expected, ", "), missingStr}

	err := fmt.Errorf(
		"dataset %s structural mismatch: expected [%s], missing [%s]",
		name, strings.Join(expected, ","), missingStr)
	if cause != nil {
		err = fmt.Errorf("dataset %s structural mismatch: %w", name, cause)
	}

	return &gn.Error{
		Code: errcode.DatasetFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  err,
	}
}

// SheetNotFoundError creates an error for a missing xlsx worksheet.
func SheetNotFoundError(name, path, sheet string) error {
	msg := `Worksheet <em>%s</em> not found in dataset <em>%s</em>

<em>File:</em> %s`

	vars := []any{sheet, name, path}

	return &gn.Error{
		Code: errcode.DatasetFormatError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("dataset %s: worksheet %q not found in %s",
			name, sheet, path),
	}
}

// UnknownFormatError creates an error for an unsupported dataset
// format.
func UnknownFormatError(name, format string) error {
	msg := `Dataset <em>%s</em> declares unsupported format <em>%s</em>

Supported formats: csv, xlsx, sqlite`

	vars := []any{name, format}

	return &gn.Error{
		Code: errcode.DatasetUnknownFormatError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("dataset %s: unsupported format %q",
			name, format),
	}
}
