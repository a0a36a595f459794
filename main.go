package main

import "github.com/papapumpkin/parampl/cmd"

func main() {
	cmd.Execute()
}
