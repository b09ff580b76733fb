package main

import "github.com/lmalina/shape-rank/cmd"

func main() {
	cmd.Execute()
}
