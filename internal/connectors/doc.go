// Package connectors contains source-specific document fetchers.
//
// Each subpackage implements the driven.Fetcher port for one URI scheme:
// filesystem handles bare paths and file:// URIs, github handles
// github://owner/repo/path references.
package connectors
