// Package client executes HTTP exchanges and hands them over in printable form.
// Blocking exchanges are fully buffered; cooperative exchanges leave the final body
// unread until it is printed. Redirect hops are collected along the way
// so the whole chain can be summarized.
package client
