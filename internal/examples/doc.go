// Package examples discovers example sources in a directory.
//
// An example is any directory entry whose name ends with the configured
// suffix (".rs" by default). Its identifier is the name with the suffix
// removed; that identifier is what the external build tool receives.
//
// Discovery reads names only. File contents are never opened.
package examples
