package main

import "hdrbar/internal/cli"

func main() {
	cli.Execute()
}
