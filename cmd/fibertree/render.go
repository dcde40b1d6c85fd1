package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/tinyfiber/elementfile"
	"github.com/delaneyj/tinyfiber/fiber"
	"github.com/delaneyj/tinyfiber/idle"
	"github.com/delaneyj/tinyfiber/memdom"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render a YAML element tree (or the built-in app) and print the target calls",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  fileKey,
				Usage: "YAML element tree to render",
			},
			&cli.DurationFlag{
				Name:  budgetKey,
				Usage: "Idle time per frame given to the reconciler",
				Value: 2 * time.Millisecond,
			},
			&cli.BoolFlag{
				Name:  htmlKey,
				Usage: "Also print the document as HTML",
			},
		},
		Action: render,
	}
}

func loadTree(path string) (*fiber.Element, error) {
	if path == "" {
		return App(0, nil), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	el, err := elementfile.Decode(f, registry)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return el, nil
}

func render(ctx context.Context, cmd *cli.Command) error {
	el, err := loadTree(cmd.String(fileKey))
	if err != nil {
		return err
	}

	doc := memdom.NewDocument()
	root := doc.CreateContainer("root")
	loop := idle.New(
		idle.WithBudget(cmd.Duration(budgetKey)),
		idle.WithInterval(time.Millisecond),
	)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	r := fiber.NewReconciler(doc,
		fiber.WithLogger(passLogger(cmd)),
		fiber.WithOnCommit(func(*fiber.Reconciler, *fiber.Fiber) { cancel(nil) }),
		fiber.WithOnError(func(_ *fiber.Reconciler, err error) { cancel(err) }),
	)
	r.Schedule(loop)
	if err := loop.Post(func() { r.Render(el, root) }); err != nil {
		return err
	}

	start := time.Now()
	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	if cause := context.Cause(ctx); !errors.Is(cause, context.Canceled) {
		return cause
	}

	renderOps(os.Stdout, "render", doc.Ops())
	log.Printf(
		"committed %s target calls in %s over %s frames, digest %s",
		humanize.Comma(int64(len(doc.Ops()))), time.Since(start), humanize.Comma(int64(loop.Frames())),
		digestString(doc),
	)

	if cmd.Bool(htmlKey) {
		if err := memdom.WriteHTML(os.Stdout, root); err != nil {
			return err
		}
		fmt.Println()
	}
	return nil
}
