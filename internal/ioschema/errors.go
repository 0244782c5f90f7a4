package ioschema

import (
	"fmt"

	"github.com/MinhHuy1507/agriseed/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for schema operations attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for a failed GORM session over
// the existing pgx pool.
func GORMConnectionError(err error) error {
	msg := "Could not open GORM session over the database pool"

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to open gorm session: %w", err),
	}
}

// CreateSchemaError creates an error for a failed AutoMigrate.
func CreateSchemaError(err error) error {
	msg := `Could not create database schema

<em>How to fix:</em>
  1. Check the database user has CREATE privileges
  2. Re-run with <em>agriseed create --force</em> to rebuild from scratch`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}
