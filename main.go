package main

import "github.com/dkrenn/tempus/cmd"

func main() {
	cmd.Execute()
}
