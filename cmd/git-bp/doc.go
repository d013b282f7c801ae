// git-bp is a helper for backporting commits between git branches.
//
// It keeps backport work in a commit list file (one commit per line,
// optionally followed by its Change-Id and title, with # comments) and
// offers:
//
//	git bp sort -F list.txt -i --ref origin/master   # order the list along upstream history
//	git bp pick -F list.txt | sh                     # cherry-pick it with -x --signoff
//	git bp fix --base v6.6 --ref origin/master       # list upstream fixes not backported yet
//	git bp vim                                       # install the Vim/Neovim filetype plugin
//
// With the binary on PATH, git runs it as "git bp".
package main
