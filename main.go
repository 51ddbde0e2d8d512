package main

import "deployer/cmd"

func main() {
	cmd.Execute()
}
