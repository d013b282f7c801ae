// Package vcs answers the repository questions git-bp needs: which commits
// are in a range, what a commit's message says, whether one commit is an
// ancestor of another, and which commits mention a given string.
//
// [Querier] is the contract. [Git] answers it by shelling out to the git
// binary; [GoGit] answers it in-process with go-git. [Cached] memoizes the
// per-commit lookups of any Querier, and [New] picks a backend by name.
//
// Revisions passed to range queries are either a single revision (meaning all
// of its ancestors) or "a..b" (reachable from b but not from a).
package vcs
