package main

import "github.com/brk3/habit-tracker/cmd"

func main() {
	cmd.Execute()
}
