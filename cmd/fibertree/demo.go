package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/delaneyj/tinyfiber/fiber"
	"github.com/delaneyj/tinyfiber/memdom"
	"github.com/delaneyj/tinyfiber/signal"
	"github.com/urfave/cli/v3"
)

var errNoButton = errors.New("demo: counter button not found")

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Mount the counter app and click its button, printing the target calls per render",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  clicksKey,
				Usage: "Number of clicks to dispatch",
				Value: 3,
			},
		},
		Action: demo,
	}
}

func demo(ctx context.Context, cmd *cli.Command) error {
	doc := memdom.NewDocument()
	root := doc.CreateContainer("root")
	r := fiber.NewReconciler(doc, fiber.WithLogger(passLogger(cmd)))

	var renderErr error
	sys := signal.NewSystem()
	count := signal.New(sys, 0)
	inc := &increment{count: count}
	stop := signal.Watch(count, func(c int) error {
		r.Render(App(c, inc), root)
		return r.Flush()
	}, func(err error) {
		renderErr = errors.Join(renderErr, err)
	})
	defer stop()
	if renderErr != nil {
		return renderErr
	}
	renderOps(os.Stdout, "mount", doc.Ops())
	doc.ResetOps()

	for i := int64(1); i <= cmd.Int(clicksKey); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		btn := memdom.Find(root, memdom.ByTag("button"))
		if btn == nil {
			return errNoButton
		}
		doc.Dispatch(btn, "click", nil)
		if renderErr != nil {
			return renderErr
		}
		renderOps(os.Stdout, fmt.Sprintf("click %d", i), doc.Ops())
		doc.ResetOps()
	}

	log.Printf("%q after %d signal updates, digest %s", root.Text(), sys.Updates(), digestString(doc))
	return nil
}
