package main

import "github.com/andrescamacho/domnus-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
