package main

import (
	"github.com/almayssan/formsgen/cmd"
)

func main() {
	cmd.Execute()
}
