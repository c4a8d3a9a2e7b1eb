package main

import "tendermatch/internal/cli"

func main() {
	cli.Execute()
}
