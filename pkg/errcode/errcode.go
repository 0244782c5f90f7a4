package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBTableCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBLockError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Dataset errors
	DatasetManifestError
	DatasetReadError
	DatasetFormatError
	DatasetUnknownFormatError

	// Seed errors
	SeedRowValidationError
	SeedConstraintError
	SeedConcurrentRunError
	SeedRunTimeoutError
	SeedProvincesError
	SeedRunRecordError
	SeedCancelledError

	// Verify errors
	VerifyQueryError
	VerifyFailedError
)
