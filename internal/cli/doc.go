// Package cli implements the cobra command tree for git-bp: sort, pick,
// fix, vim, config and version.
package cli
