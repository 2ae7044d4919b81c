package main

import "konnect/cmd/konnectctl/commands"

func main() {
	commands.Execute()
}
