// Package commits models the commits git-bp moves between branches and the
// plain-text commit list files users edit by hand.
//
// A commit list file holds one commit per line, "<hash> [<Change-Id>]
// [<title>]", with comment and blank lines that stay attached to the
// commit below them:
//
//	# vim: ft=gitbackportcommits
//	# networking
//	1a2b3c4d I0123456789012345678901234567890123456789 net: fix leak
//
// Hash comparisons everywhere go through [Match], which treats either
// operand as a possible abbreviation of the other.
package commits
