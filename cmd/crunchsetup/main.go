package main

import "github.com/asamgx/crunchsetup/internal/cli"

func main() {
	cli.Execute()
}
