package main

import (
	"facet/cmd/handlers"
)

func main() {
	handlers.Execute()
}
