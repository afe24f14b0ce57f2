package main

import "fmt"

func versionString() string {
	return fmt.Sprintf("%s (commit %s)", version, commit)
}
