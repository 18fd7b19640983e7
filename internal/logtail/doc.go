// Package logtail reads the tail of holonet's log file for the in-app
// activity view.
//
// # Reading
//
// Read keeps a ring buffer of the last maxLines lines while scanning the file
// once, so memory stays O(maxLines) however large the log grows. A missing
// file yields no lines and no error: the log appears on the first write.
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//
// # Parsing
//
// Parse splits a zap console line ("time<TAB>LEVEL<TAB>message<TAB>{fields}")
// into its parts so the UI can colour by level. Lines that do not match,
// such as stack traces, come back with only Message set.
package logtail
