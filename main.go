package main

import "sablec/cmd"

func main() {
	cmd.Execute()
}
