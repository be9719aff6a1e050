// Package utils provides small helpers shared across the application,
// such as content type checks and the User-Agent provider used by the HTTP transport.
package utils
