package main

import (
	"shoctl/cmd/cli/app/cmd"
)

func main() {
	cmd.Execute()
}
