package main

import "github.com/cluelogs/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
