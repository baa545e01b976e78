package main

import "golocate/internal/cli"

func main() {
	cli.Execute()
}
