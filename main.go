package main

import "github.com/yuri91/swaystart/cmd"

func main() {
	cmd.Execute()
}
