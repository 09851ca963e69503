package main

import "arduino-config/cmd"

func main() {
	cmd.Execute()
}
