package main

import "github.com/tickd-io/tickd/cmd/tickd/cmd"

func main() {
	cmd.Execute()
}
