// Command moviegraph serves the movie graph web front end and maintains its
// Neo4j dataset.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "moviegraph",
		Usage: "Browse and rate movies stored in a Neo4j graph",
		Commands: []*cli.Command{
			serveCommand(),
			seedCommand(),
			datagenCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
