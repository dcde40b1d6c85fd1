package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/tinyfiber/fiber"
	"github.com/delaneyj/tinyfiber/memdom"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Time mount and update passes over a generated tree",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  widthKey,
				Usage: "Rows under the root element",
				Value: 100,
			},
			&cli.IntFlag{
				Name:  depthKey,
				Usage: "Nested spans per row",
				Value: 10,
			},
			&cli.IntFlag{
				Name:  passesKey,
				Usage: "Passes timed per case",
				Value: 50,
			},
		},
		Action: bench,
	}
}

// benchTree is width rows of depth nested spans, with pass as the leaf text.
func benchTree(width, depth, pass int) *fiber.Element {
	rows := make([]*fiber.Element, width)
	for i := range rows {
		leaf := fiber.CreateElement("span", nil, pass)
		for j := 1; j < depth; j++ {
			leaf = fiber.CreateElement("span", fiber.Props{"className": "d"}, leaf)
		}
		rows[i] = fiber.CreateElement("div", fiber.Props{"id": i}, leaf)
	}
	return fiber.CreateElement("div", nil, rows)
}

func bench(ctx context.Context, cmd *cli.Command) error {
	width, depth, passes := int(cmd.Int(widthKey)), int(cmd.Int(depthKey)), int(cmd.Int(passesKey))
	if width < 1 || depth < 1 || passes < 1 {
		return fmt.Errorf("bench: width, depth and passes must be positive")
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"case", "fibers", "calls/pass", "avg", "min", "p75", "p99", "max"})

	fibers := width*depth + width + 2
	cases := []struct {
		name string
		run  func(r *fiber.Reconciler, doc *memdom.Document, root *memdom.Node, pass int) error
	}{
		{
			name: "mount",
			run: func(r *fiber.Reconciler, doc *memdom.Document, root *memdom.Node, pass int) error {
				r.Render(benchTree(width, depth, pass), root)
				return r.Flush()
			},
		},
		{
			name: "update",
			run: func(r *fiber.Reconciler, doc *memdom.Document, root *memdom.Node, pass int) error {
				r.Render(benchTree(width, depth, pass+1), root)
				return r.Flush()
			},
		},
		{
			name: "noop",
			run: func(r *fiber.Reconciler, doc *memdom.Document, root *memdom.Node, pass int) error {
				r.Render(benchTree(width, depth, 0), root)
				return r.Flush()
			},
		},
	}

	for _, c := range cases {
		tach := tachymeter.New(&tachymeter.Config{Size: passes})
		calls := 0
		for i := 0; i < passes; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc := memdom.NewDocument()
			root := doc.CreateContainer("root")
			r := fiber.NewReconciler(doc, fiber.WithLogger(passLogger(cmd)))
			if c.name != "mount" {
				r.Render(benchTree(width, depth, 0), root)
				if err := r.Flush(); err != nil {
					return err
				}
				doc.ResetOps()
			}

			start := time.Now()
			if err := c.run(r, doc, root, i); err != nil {
				return fmt.Errorf("%s pass %d: %w", c.name, i, err)
			}
			tach.AddTime(time.Since(start))
			calls += len(doc.Ops())
		}

		calc := tach.Calc()
		table.Append([]string{
			c.name,
			humanize.Comma(int64(fibers)),
			humanize.Comma(int64(calls / passes)),
			calc.Time.Avg.String(),
			calc.Time.Min.String(),
			calc.Time.P75.String(),
			calc.Time.P99.String(),
			calc.Time.Max.String(),
		})
	}

	log.Printf("%d passes per case over %dx%d trees", passes, width, depth)
	table.Render()
	return nil
}
