package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

const (
	fileKey    = "file"
	budgetKey  = "budget"
	htmlKey    = "html"
	verboseKey = "verbose"
	clicksKey  = "clicks"
	widthKey   = "width"
	depthKey   = "depth"
	passesKey  = "passes"
)

func main() {
	cmd := &cli.Command{
		Name:  "fibertree",
		Usage: "Render element trees through the fiber reconciler into an in-memory document",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log render pass lifecycle",
			},
		},
		Commands: []*cli.Command{
			renderCommand(),
			demoCommand(),
			benchCommand(),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func passLogger(cmd *cli.Command) *log.Logger {
	if !cmd.Bool(verboseKey) {
		return nil
	}
	return log.New(os.Stderr, "fiber: ", log.LstdFlags|log.Lmicroseconds)
}
