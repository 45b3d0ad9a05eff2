package main

import "github.com/rpgo/household-planner/cmd"

func main() {
	cmd.Execute()
}
