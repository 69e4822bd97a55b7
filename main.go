package main

import "github.com/brogergvhs/goodmorning/cmd"

func main() {
	cmd.Execute()
}
