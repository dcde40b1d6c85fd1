package main

import (
	"github.com/delaneyj/tinyfiber/elementfile"
	"github.com/delaneyj/tinyfiber/fiber"
	"github.com/delaneyj/tinyfiber/memdom"
	"github.com/delaneyj/tinyfiber/signal"
)

var registry = elementfile.Registry{
	"HelloWorld": HelloWorld,
	"Counter":    Counter,
}

func HelloWorld(fiber.Props) *fiber.Element {
	return fiber.CreateElement("p", fiber.Props{"className": "hello"}, "Hello, World!")
}

// Counter shows a count and a button. The count and the click handler come
// in through props; the host owns the state.
func Counter(props fiber.Props) *fiber.Element {
	count, _ := props["count"].(int)
	button := fiber.Props{"type": "button"}
	if h, ok := props["onIncrement"]; ok {
		button["onClick"] = h
	}
	return fiber.CreateElement("div", nil,
		fiber.CreateElement("h1", nil, "Go + fibers"),
		fiber.CreateElement("div", fiber.Props{"className": "card"},
			fiber.CreateElement("button", button, "count is ", count),
		),
		fiber.CreateElement("p", fiber.Props{"className": "read-the-docs"},
			"Click the button to re-render",
		),
	)
}

func App(count int, onIncrement any) *fiber.Element {
	counter := fiber.Props{"count": count}
	if onIncrement != nil {
		counter["onIncrement"] = onIncrement
	}
	return fiber.CreateElement("div", fiber.Props{"id": "app"},
		fiber.CreateElement("h1", nil, "Tiny fiber example"),
		fiber.CreateElement(HelloWorld, nil),
		fiber.CreateElement(Counter, counter),
	)
}

// increment is a stable listener, so re-renders keep it attached.
type increment struct {
	count *signal.Cell[int]
}

func (i *increment) HandleEvent(*memdom.Event) {
	i.count.Update(func(v int) int { return v + 1 })
}
