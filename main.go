package main

import (
	"skorpik-value/cmd"
)

func main() {
	cmd.Execute()
}
