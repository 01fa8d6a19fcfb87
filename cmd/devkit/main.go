package main

import "devkit-builder/internal/cli"

func main() {
	cli.Execute()
}
