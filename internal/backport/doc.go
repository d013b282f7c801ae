// Package backport traces commits on a maintenance branch back to their
// originals on a reference branch and collects the follow-up fixes that
// have not been backported yet.
//
// Originals are found through the Change-Id trailer of the backported
// commit and through each of its Was-Change-Id trailers. For every
// original, commits later on the reference branch carrying
// "Fixes: <short hash>" are candidate fixes; a candidate already present
// on the working branch (as an ancestor, by Change-Id, or by a
// "cherry picked from commit" line) is dropped. Commits that mention the
// original's short hash without a matching Fixes trailer are reported as
// unmarked references.
package backport
