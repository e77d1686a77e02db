package main

import "github.com/OpenTraceLab/schemroute/cmd/schemroute/cmd"

func main() {
	cmd.Execute()
}
