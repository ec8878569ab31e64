package main

import "inkboard/cmd/client/cmd"

func main() {
	cmd.Execute()
}
