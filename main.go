package main

import "github.com/deploymenttheory/go-dat/cmd"

func main() {
	cmd.Execute()
}
