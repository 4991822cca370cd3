package domain

import "go.trai.ch/zerr"

var (
	// ErrNoCommand is returned when a call is constructed without a command.
	ErrNoCommand = zerr.New("no command specified")

	// ErrPathUnreadable is returned when a declared path exists but cannot be
	// hashed, e.g. permission denied or a directory where a file was expected.
	ErrPathUnreadable = zerr.New("path exists but cannot be read")

	// ErrCommandFailed is returned when the wrapped command exits with a
	// non-zero status. The prior cache record is left untouched.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandStartFailed is returned when the wrapped command cannot be
	// launched at all.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrStoreWriteFailed is returned when the cache record cannot be
	// persisted after a successful run.
	ErrStoreWriteFailed = zerr.New("failed to write cache record")

	// ErrStoreCreateFailed is returned when the cache record directory cannot
	// be created.
	ErrStoreCreateFailed = zerr.New("failed to create cache record directory")

	// ErrStoreMarshalFailed is returned when the cache record cannot be
	// marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal cache record")

	// ErrInvalidIdentity is returned when a serialized call identity cannot
	// be decoded.
	ErrInvalidIdentity = zerr.New("invalid call identity")

	// ErrInvalidDigest is returned when a serialized file digest cannot be
	// decoded.
	ErrInvalidDigest = zerr.New("invalid file digest")

	// ErrDigestComputationFailed is returned when hashing the declared paths
	// fails.
	ErrDigestComputationFailed = zerr.New("failed to compute file digests")

	// ErrCacheRootResolution is returned when no cache root directory can be
	// determined from the platform conventions.
	ErrCacheRootResolution = zerr.New("could not resolve the user cache directory")

	// ErrCallfileReadFailed is returned when the callfile cannot be read.
	ErrCallfileReadFailed = zerr.New("failed to read callfile")

	// ErrCallfileParseFailed is returned when the callfile cannot be parsed.
	ErrCallfileParseFailed = zerr.New("failed to parse callfile")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch input paths")
)
