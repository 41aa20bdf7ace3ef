package main

import (
	"context"
	"log"
	"os"

	"github.com/nuvex/pgapply/cmd/pgapply/cmd"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	if err := cmd.Run(context.Background(), cmd.Version{Version: version, Commit: commit, Date: date}, os.Args); err != nil {
		log.Fatal(err)
	}
}
