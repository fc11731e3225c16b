// Package git answers history questions about files in a local working copy.
//
// Two backends implement the same query surface:
//   - exec runs the git binary found on PATH
//   - go-git reads the repository in-process
//
// A Provider reports whether its backend is usable at all (Available) and opens
// a Repository bound to a directory (Open). Repository.Log mirrors
// `git log --pretty=format:<fmt> -n <count> -- <path>` and returns the raw
// output, an empty string when no commit touched the path, or a *CommandError
// when the query itself failed.
package git
