package main

import "github.com/irrigo/dashboard/cmd/irrigo-cli/cmd"

func main() {
	cmd.Execute()
}
