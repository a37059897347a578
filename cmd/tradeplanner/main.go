package main

import "github.com/andrescamacho/traveller-trade-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
