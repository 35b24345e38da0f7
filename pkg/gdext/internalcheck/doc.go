// Package internalcheck provides internal validation and testing utilities.
//
// This package contains source-policy tests for the gdext binding. It is not
// intended for external use and the API may change without notice.
package internalcheck
