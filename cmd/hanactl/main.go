package main

import (
	"os"

	"hanactl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
