// Package report holds the result of a fit in a form meant for consumers:
// plain text for people, a stable JSON document for external renderers, and
// the Renderer interface for anything that wants to draw the fitted line.
package report
