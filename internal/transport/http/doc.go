// Package http provides the round trippers used by the client:
// redirect hop recording, exchange logging and User-Agent header injection.
// Exchanges are logged with the same formatting that is printed to the console.
package http
