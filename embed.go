package main

import (
	"embed"
	"io/fs"
)

// Built-in profile repository served under /profiles/ so the resolver works
// without any external registry.
//
//go:embed all:profiles
var profileFiles embed.FS

// getProfilesFS returns a sub-filesystem rooted at the "profiles" directory.
func getProfilesFS() fs.FS {
	sub, err := fs.Sub(profileFiles, "profiles")
	if err != nil {
		panic(err)
	}
	return sub
}
