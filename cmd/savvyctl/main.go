package main

import "savvy/cmd/savvyctl/cmd"

func main() {
	cmd.Execute()
}
