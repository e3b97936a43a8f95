// Package secrets implements the process-wide secret configuration store.
//
// A Store holds exactly one immutable Record per process, populated lazily on
// first demand by a Loader. Two loaders exist: EnvLoader reads the secret
// fields from environment variables, GitHubLoader fetches a base64-encoded
// JSON document through the GitHub contents API. Concurrent first callers
// coalesce onto a single in-flight load; the record never changes after a
// successful load.
package secrets
