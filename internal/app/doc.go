// Package app provides the main application logic of http-pprint.
// It builds a request for every URL, executes it in the configured mode
// and prints the response summary, moving on to the next URL when one fails.
package app
