package ioverify

import (
	"fmt"
	"strings"

	"github.com/MinhHuy1507/agriseed/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when verification is attempted
// without database connection.
func NotConnectedError() error {
	msg := "Verification attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// QueryError creates an error for a failed verification query.
func QueryError(table string, err error) error {
	msg := `Could not query the <em>%s</em> table

<em>How to fix:</em>
  1. Make sure the schema exists: <em>agriseed create</em>
  2. Check the database error below`

	vars := []any{table}

	return &gn.Error{
		Code: errcode.VerifyQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to query %s: %w", table, err),
	}
}

// FailedError creates an error summarizing failed consistency checks.
func FailedError(problems []string) error {
	msg := `Database verification failed

<em>Problems found:</em>
%s`

	var list strings.Builder
	for _, p := range problems {
		fmt.Fprintf(&list, "  - %s\n", p)
	}
	vars := []any{list.String()}

	return &gn.Error{
		Code: errcode.VerifyFailedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("verification failed: %s",
			strings.Join(problems, "; ")),
	}
}
