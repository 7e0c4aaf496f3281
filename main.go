package main

import "savings-planner/cmd"

func main() {
	cmd.Execute()
}
