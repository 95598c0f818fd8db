// Package services holds the clients for the external tools previewgen
// shells out to, plus the shared error markers used to classify their
// failures. Each client takes an injectable Executor so command behaviour can
// be stubbed in tests.
package services
