package main

import "github.com/cisasm/assembler/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
