package main

import "github.com/packcheck/packcheck/pkg/cli"

func main() {
	cli.Execute()
}
