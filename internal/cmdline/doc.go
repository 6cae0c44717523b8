// Package cmdline implements the vi-style command line of sweeptop.
//
// A Session starts Inactive. The host calls EnableInputMode when the user
// presses ':' and then routes key presses through HandleKey until the session
// returns to Inactive. Enter tokenizes the line (see Parse), looks the command
// name up case-insensitively and runs it:
//
//	exec COMMAND    launch a program without waiting for it
//	kill PID...     terminate processes
//	q, quit         exit
//	sort COLUMN     reorder the process list
//	tree            show the process list as a tree
//
// Failures never leave the session; the latest one is available from Err
// until input mode is entered again. Submitted lines are kept in a History
// that Up and Down recall.
package cmdline
