// Package giterror classifies errors returned by the GitHub API into
// actionable categories: authentication failures, missing users, rate
// limits, query complexity overruns, and network problems.
//
// Classification prefers typed errors in the chain (via errors.As) and
// falls back to inspecting error text, since the GraphQL client surfaces
// most API failures as plain message strings.
package giterror
