package main

import "ramws/cmd/ramws/cmd"

func main() {
	cmd.Execute()
}
